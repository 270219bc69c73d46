// Package config handles key tool configuration.
//
// Values are layered: built-in defaults, then the key = value config file,
// then command-line flags. Validate runs last.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ardikars/farm/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// ConfigFileName is the name of the config file inside the data directory.
const ConfigFileName = "farm.conf"

// Config holds the key tool's runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`
	KeyFile string      `conf:"keyfile"` // default key file for generate and show

	// Chain derivation
	Chain ChainConfig

	// Wallet address derivation
	Wallet WalletConfig

	// Logging
	Log LogConfig
}

// ChainConfig holds index-chain settings.
type ChainConfig struct {
	MaxIndex uint32 `conf:"chain.maxindex"` // highest index a walk may reach
}

// WalletConfig holds wallet address settings.
type WalletConfig struct {
	CoinType uint32 `conf:"wallet.cointype"` // BIP-44 coin type
	Length   int    `conf:"wallet.length"`   // addresses printed per key
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// HRP returns the bech32m address prefix of the configured network.
func (c *Config) HRP() string {
	if c.Network == Testnet {
		return types.TestnetHRP
	}
	return types.MainnetHRP
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.farm
//	macOS:   ~/Library/Application Support/Farm
//	Windows: %APPDATA%\Farm
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".farm"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Farm")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Farm")
		}
		return filepath.Join(home, "AppData", "Roaming", "Farm")
	default:
		return filepath.Join(home, ".farm")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, ConfigFileName)
}

// KeyFilePath returns the key file path. Relative paths are resolved
// against the data directory.
func (c *Config) KeyFilePath() string {
	if c.KeyFile == "" || filepath.IsAbs(c.KeyFile) {
		return c.KeyFile
	}
	return filepath.Join(c.DataDir, c.KeyFile)
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}
