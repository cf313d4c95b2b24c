package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"charm-voting-tui/helpers"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// SepoliaChainID is the network the voting contract is deployed on
	SepoliaChainID uint64 = 11155111
	// DefaultContractAddress is the deployed voting contract
	DefaultContractAddress = "0x378eD97cebED5D7a265510D11063b313C271EC0d"
)

// Config represents the application configuration
type Config struct {
	RPCURL          string `json:"rpc_url" env:"VOTING_RPC_URL"`
	ChainID         uint64 `json:"chain_id" env:"VOTING_CHAIN_ID"`
	ChainName       string `json:"chain_name" env:"VOTING_CHAIN_NAME"`
	ContractAddress string `json:"contract_address" env:"VOTING_CONTRACT_ADDRESS"`
	ExplorerURL     string `json:"explorer_url" env:"VOTING_EXPLORER_URL"`

	// key sources
	KeystoreDir string `json:"keystore_dir,omitempty" env:"VOTING_KEYSTORE_DIR"`
	Account     string `json:"account,omitempty" env:"VOTING_ACCOUNT"`
	PrivateKey  string `json:"-" env:"VOTING_PRIVATE_KEY"` // never persisted

	RPCTimeoutSeconds     int `json:"rpc_timeout_seconds" env:"VOTING_RPC_TIMEOUT_SECONDS"`
	ConfirmTimeoutSeconds int `json:"confirm_timeout_seconds" env:"VOTING_CONFIRM_TIMEOUT_SECONDS"`

	Logger bool `json:"logger" env:"VOTING_LOGGER"`
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		ChainID:               SepoliaChainID,
		ChainName:             "Sepolia",
		ContractAddress:       DefaultContractAddress,
		ExplorerURL:           "https://sepolia.etherscan.io",
		RPCTimeoutSeconds:     8,
		ConfirmTimeoutSeconds: 180,
		Logger:                false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve builds the runtime configuration: defaults, then the JSON file at path,
// then environment overrides. ETH_RPC_URL is used when no RPC URL is set.
func Resolve(path string) (Config, error) {
	cfg := LoadOrCreate(path)
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = strings.TrimSpace(os.Getenv("ETH_RPC_URL"))
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.ChainID == 0 {
		c.ChainID = d.ChainID
	}
	if c.ChainName == "" {
		c.ChainName = d.ChainName
	}
	if c.ContractAddress == "" {
		c.ContractAddress = d.ContractAddress
	}
	if c.RPCTimeoutSeconds <= 0 {
		c.RPCTimeoutSeconds = d.RPCTimeoutSeconds
	}
	if c.ConfirmTimeoutSeconds <= 0 {
		c.ConfirmTimeoutSeconds = d.ConfirmTimeoutSeconds
	}
}

// Validate checks the fixed constants the session depends on
func (c Config) Validate() error {
	if c.ChainID == 0 {
		return fmt.Errorf("chain id must be set")
	}
	if !helpers.IsValidEthAddress(c.ContractAddress) {
		return fmt.Errorf("invalid contract address %q", c.ContractAddress)
	}
	if c.Account != "" && !helpers.IsValidEthAddress(c.Account) {
		return fmt.Errorf("invalid account address %q", c.Account)
	}
	return nil
}

// Contract returns the voting contract address
func (c Config) Contract() common.Address {
	return common.HexToAddress(c.ContractAddress)
}

// RPCTimeout is the per-request transport timeout
func (c Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPCTimeoutSeconds) * time.Second
}

// ConfirmTimeout bounds how long a transaction may take to be mined
func (c Config) ConfirmTimeout() time.Duration {
	return time.Duration(c.ConfirmTimeoutSeconds) * time.Second
}

// TxURL links a transaction on the configured block explorer
func (c Config) TxURL(hash string) string {
	if c.ExplorerURL == "" {
		return hash
	}
	return strings.TrimRight(c.ExplorerURL, "/") + "/tx/" + hash
}
