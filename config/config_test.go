package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func writeConf(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	mn := Default(Mainnet)
	if mn.Network != Mainnet || mn.HRP() != "xck" {
		t.Errorf("mainnet default = %s/%s", mn.Network, mn.HRP())
	}
	if mn.Chain.MaxIndex != DefaultMaxIndex {
		t.Errorf("MaxIndex = %d, want %d", mn.Chain.MaxIndex, DefaultMaxIndex)
	}
	if mn.Wallet.CoinType != DefaultCoinType {
		t.Errorf("CoinType = %d, want %d", mn.Wallet.CoinType, DefaultCoinType)
	}
	if err := Validate(mn); err != nil {
		t.Errorf("mainnet default invalid: %v", err)
	}

	test := Default(Testnet)
	if test.Network != Testnet || test.HRP() != "txck" {
		t.Errorf("testnet default = %s/%s", test.Network, test.HRP())
	}
	if err := Validate(test); err != nil {
		t.Errorf("testnet default invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConf(t, t.TempDir(), `
# comment
network = testnet
keyfile = "my.key"
log.level='debug'
chain.maxindex=500
`)

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	want := map[string]string{
		"network":        "testnet",
		"keyfile":        "my.key",
		"log.level":      "debug",
		"chain.maxindex": "500",
	}
	if len(values) != len(want) {
		t.Fatalf("LoadFile() = %v, want %v", values, want)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("values[%q] = %q, want %q", k, values[k], v)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("missing file should give no values, got %v", values)
	}
}

func TestLoadFile_InvalidLine(t *testing.T) {
	path := writeConf(t, t.TempDir(), "network = mainnet\nthis line has no equals\n")

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("LoadFile() error = %v, want line 2 error", err)
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := Default(Mainnet)
	err := ApplyFileConfig(cfg, map[string]string{
		"chain.maxindex":  "42",
		"wallet.cointype": "0",
		"wallet.length":   "3",
		"log.json":        "yes",
		"log.file":        "/tmp/farm.log",
		"unknown.key":     "ignored",
	})
	if err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}

	if cfg.Chain.MaxIndex != 42 {
		t.Errorf("MaxIndex = %d, want 42", cfg.Chain.MaxIndex)
	}
	if cfg.Wallet.CoinType != 0 || cfg.Wallet.Length != 3 {
		t.Errorf("Wallet = %+v", cfg.Wallet)
	}
	if !cfg.Log.JSON || cfg.Log.File != "/tmp/farm.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestApplyFileConfig_BadNumber(t *testing.T) {
	for _, key := range []string{"chain.maxindex", "wallet.cointype", "wallet.length"} {
		cfg := Default(Mainnet)
		if err := ApplyFileConfig(cfg, map[string]string{key: "lots"}); err == nil {
			t.Errorf("ApplyFileConfig(%s=lots) should fail", key)
		}
	}
	cfg := Default(Mainnet)
	if err := ApplyFileConfig(cfg, map[string]string{"chain.maxindex": "-1"}); err == nil {
		t.Error("negative chain.maxindex should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad network", func(c *Config) { c.Network = "regtest" }},
		{"empty datadir", func(c *Config) { c.DataDir = "" }},
		{"zero max index", func(c *Config) { c.Chain.MaxIndex = 0 }},
		{"hardened coin type", func(c *Config) { c.Wallet.CoinType = 1 << 31 }},
		{"negative length", func(c *Config) { c.Wallet.Length = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(Mainnet)
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "network = testnet\nchain.maxindex = 10\nlog.level = info\nlog.json = true\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f Flags
	f.Register(fs)
	if err := fs.Parse([]string{"--datadir", dir, "--max-index", "7", "--log-json=false"}); err != nil {
		t.Fatal(err)
	}
	f.Resolve(fs)

	cfg, err := Load(&f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Network != Testnet {
		t.Errorf("Network = %s, want testnet (from file)", cfg.Network)
	}
	if cfg.Wallet.CoinType != 1 {
		t.Errorf("CoinType = %d, want testnet default 1", cfg.Wallet.CoinType)
	}
	if cfg.Chain.MaxIndex != 7 {
		t.Errorf("MaxIndex = %d, want 7 (flag beats file)", cfg.Chain.MaxIndex)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info (from file)", cfg.Log.Level)
	}
	if cfg.Log.JSON {
		t.Error("--log-json=false should override the file")
	}
	if cfg.KeyFilePath() != filepath.Join(dir, DefaultKeyFile) {
		t.Errorf("KeyFilePath() = %q", cfg.KeyFilePath())
	}
}

func TestLoad_TestnetFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f Flags
	f.Register(fs)
	if err := fs.Parse([]string{"--testnet", "--datadir", t.TempDir(), "--keyfile", "/abs/k.key"}); err != nil {
		t.Fatal(err)
	}
	f.Resolve(fs)

	cfg, err := Load(&f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %s, want testnet", cfg.Network)
	}
	if cfg.KeyFilePath() != "/abs/k.key" {
		t.Errorf("KeyFilePath() = %q, want /abs/k.key", cfg.KeyFilePath())
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "network = moonnet\n")

	if _, err := Load(&Flags{DataDir: dir}); err == nil {
		t.Error("Load() should reject an unknown network")
	}
}

func TestEnsureDataDirs(t *testing.T) {
	cfg := Default(Testnet)
	cfg.DataDir = filepath.Join(t.TempDir(), "farm")

	if err := EnsureDataDirs(cfg); err != nil {
		t.Fatalf("EnsureDataDirs() error: %v", err)
	}
	// Idempotent.
	if err := EnsureDataDirs(cfg); err != nil {
		t.Fatalf("second EnsureDataDirs() error: %v", err)
	}

	values, err := LoadFile(cfg.ConfigFile())
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if values["network"] != "testnet" || values["wallet.cointype"] != "1" {
		t.Errorf("default config values = %v", values)
	}

	loaded := Default(Mainnet)
	loaded.DataDir = cfg.DataDir
	if err := ApplyFileConfig(loaded, values); err != nil {
		t.Fatal(err)
	}
	if err := Validate(loaded); err != nil {
		t.Errorf("written default config does not validate: %v", err)
	}
}
