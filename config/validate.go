package config

import (
	"fmt"

	"github.com/ardikars/farm/internal/log"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if cfg.Chain.MaxIndex == 0 {
		return fmt.Errorf("chain.maxindex must be positive")
	}
	if cfg.Wallet.CoinType >= 1<<31 {
		return fmt.Errorf("wallet.cointype must be below 2^31")
	}
	if cfg.Wallet.Length < 0 {
		return fmt.Errorf("wallet.length must not be negative")
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
