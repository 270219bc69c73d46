package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds the global command-line flags.
type Flags struct {
	// Core
	Network string
	Testnet bool
	DataDir string
	Config  string
	KeyFile string

	// Chain
	MaxIndex uint32

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Explicitly-set flags (for zero-value overrides).
	SetMaxIndex bool
	SetLogJSON  bool
}

// Register adds the global flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	// Core
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory (default: ~/.farm)")
	fs.StringVarP(&f.Config, "config", "c", "", "Config file path (default: <datadir>/"+ConfigFileName+")")
	fs.StringVar(&f.KeyFile, "keyfile", "", "Key file path (default: <datadir>/"+DefaultKeyFile+")")

	// Chain
	fs.Uint32Var(&f.MaxIndex, "max-index", 0, fmt.Sprintf("Highest chain index a walk may reach (default: %d)", DefaultMaxIndex))

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")
}

// Resolve records which flags were set explicitly. Call it after parsing.
func (f *Flags) Resolve(fs *pflag.FlagSet) {
	if f.Testnet {
		f.Network = string(Testnet)
	}
	f.SetMaxIndex = fs.Changed("max-index")
	f.SetLogJSON = fs.Changed("log-json")
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	// Core
	if f.Network != "" {
		cfg.Network = NetworkType(strings.ToLower(f.Network))
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.KeyFile != "" {
		cfg.KeyFile = f.KeyFile
	}

	// Chain
	if f.SetMaxIndex {
		cfg.Chain.MaxIndex = f.MaxIndex
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// Load builds the configuration with the following precedence:
// 1. Default values
// 2. Config file
// 3. Command-line flags
func Load(flags *Flags) (*Config, error) {
	if flags == nil {
		flags = &Flags{}
	}

	// Determine network first (needed for defaults)
	network := Mainnet
	if strings.ToLower(flags.Network) == string(Testnet) {
		network = Testnet
	}

	cfg := Default(network)

	// Override datadir if specified
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	// A network set only in the file selects that network's defaults.
	if flags.Network == "" {
		if n, ok := fileValues["network"]; ok && NetworkType(strings.ToLower(n)) != network {
			dataDir := cfg.DataDir
			cfg = Default(NetworkType(strings.ToLower(n)))
			cfg.DataDir = dataDir
		}
	}

	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	// Flags have the highest precedence
	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
