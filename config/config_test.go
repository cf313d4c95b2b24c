package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveDefaults(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "")
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.ChainID != SepoliaChainID {
		t.Errorf("Expected chain id %d, got %d", SepoliaChainID, cfg.ChainID)
	}
	if cfg.ContractAddress != DefaultContractAddress {
		t.Errorf("Expected default contract, got %s", cfg.ContractAddress)
	}
	if cfg.RPCTimeout() != 8*time.Second {
		t.Errorf("Expected 8s rpc timeout, got %s", cfg.RPCTimeout())
	}

	// LoadOrCreate should have written the defaults
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected config file to be created: %v", err)
	}
}

func TestResolveEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, Config{RPCURL: "http://file:8545", ChainID: 5}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("VOTING_RPC_URL", "http://env:8545")
	t.Setenv("VOTING_PRIVATE_KEY", "abc")
	t.Setenv("VOTING_CONFIRM_TIMEOUT_SECONDS", "30")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.RPCURL != "http://env:8545" {
		t.Errorf("Expected env RPC URL, got %s", cfg.RPCURL)
	}
	if cfg.ChainID != 5 {
		t.Errorf("Expected chain id from file, got %d", cfg.ChainID)
	}
	if cfg.PrivateKey != "abc" {
		t.Errorf("Expected private key from env")
	}
	if cfg.ConfirmTimeout() != 30*time.Second {
		t.Errorf("Expected 30s confirm timeout, got %s", cfg.ConfirmTimeout())
	}
}

func TestResolveFallsBackToEthRPCURL(t *testing.T) {
	t.Setenv("VOTING_RPC_URL", "")
	t.Setenv("ETH_RPC_URL", " https://rpc.sepolia.org ")

	cfg, err := Resolve(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.RPCURL != "https://rpc.sepolia.org" {
		t.Errorf("Expected ETH_RPC_URL fallback, got %q", cfg.RPCURL)
	}
}

func TestSaveNeverWritesPrivateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.PrivateKey = "deadbeef"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := Load(path); got.PrivateKey != "" {
		t.Errorf("private key leaked into config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad contract", func(c *Config) { c.ContractAddress = "0x1234" }, true},
		{"bad account", func(c *Config) { c.Account = "vitalik.eth" }, true},
		{"contract without prefix", func(c *Config) { c.ContractAddress = "378eD97cebED5D7a265510D11063b313C271EC0d" }, true},
		{"checksummed account", func(c *Config) { c.Account = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb2" }, false},
		{"zero chain", func(c *Config) { c.ChainID = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTxURL(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TxURL("0xabc"); got != "https://sepolia.etherscan.io/tx/0xabc" {
		t.Errorf("unexpected tx url %s", got)
	}
	cfg.ExplorerURL = ""
	if got := cfg.TxURL("0xabc"); got != "0xabc" {
		t.Errorf("expected bare hash without explorer, got %s", got)
	}
}
