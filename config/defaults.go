package config

// Default values shared by both networks.
const (
	DefaultMaxIndex     = 100_000
	DefaultCoinType     = 8444
	DefaultWalletLength = 1
	DefaultKeyFile      = "master.key"
)

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		KeyFile: DefaultKeyFile,
		Chain: ChainConfig{
			MaxIndex: DefaultMaxIndex,
		},
		Wallet: WalletConfig{
			CoinType: DefaultCoinType,
			Length:   DefaultWalletLength,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.Wallet.CoinType = 1
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
