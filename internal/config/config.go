// Package config loads client settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tododapp/internal/domain"
)

// Config represents the full client configuration
type Config struct {
	// Network selects the ledger network by name ("localhost" or "sepolia")
	Network string `yaml:"network" mapstructure:"network"`

	// RPCURL overrides the network's default node endpoint
	RPCURL string `yaml:"rpc_url" mapstructure:"rpc_url"`

	// WalletURL is the EIP-1193 provider endpoint (e.g. Frame at ws://127.0.0.1:1248)
	WalletURL string `yaml:"wallet_url" mapstructure:"wallet_url"`

	InfuraAPIKey string `yaml:"infura_api_key" mapstructure:"infura_api_key"`

	Contract ContractConfig `yaml:"contract" mapstructure:"contract"`
	Pinata   PinataConfig   `yaml:"pinata" mapstructure:"pinata"`
	Sync     SyncConfig     `yaml:"sync" mapstructure:"sync"`
	API      APIConfig      `yaml:"api" mapstructure:"api"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ContractConfig locates the TodoList contract
type ContractConfig struct {
	Address string `yaml:"address" mapstructure:"address"`

	// Artifact is the contract-address.json written by the deploy script,
	// used when Address is empty
	Artifact string `yaml:"artifact" mapstructure:"artifact"`
}

// PinataConfig configures the content store
type PinataConfig struct {
	APIURL     string        `yaml:"api_url" mapstructure:"api_url"`
	GatewayURL string        `yaml:"gateway_url" mapstructure:"gateway_url"`
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	SecretKey  string        `yaml:"secret_key" mapstructure:"secret_key"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// SyncConfig configures polling and confirmation
type SyncConfig struct {
	PollInterval     time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	ConfirmInterval  time.Duration `yaml:"confirm_interval" mapstructure:"confirm_interval"`
	FetchConcurrency int           `yaml:"fetch_concurrency" mapstructure:"fetch_concurrency"`
}

// APIConfig configures the HTTP server
type APIConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig configures where the terminal client writes its log
type LogConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// envBindings maps configuration keys to the environment variables that override them
var envBindings = map[string]string{
	"network":                "TODO_NETWORK",
	"rpc_url":                "TODO_RPC_URL",
	"wallet_url":             "TODO_WALLET_URL",
	"infura_api_key":         "INFURA_API_KEY",
	"contract.address":       "TODO_CONTRACT_ADDRESS",
	"contract.artifact":      "TODO_CONTRACT_ARTIFACT",
	"pinata.api_key":         "TODO_PINATA_API_KEY",
	"pinata.secret_key":      "TODO_PINATA_SECRET_KEY",
	"pinata.gateway_url":     "TODO_PINATA_GATEWAY",
	"sync.poll_interval":     "TODO_POLL_INTERVAL",
	"sync.fetch_concurrency": "TODO_FETCH_CONCURRENCY",
	"api.addr":               "TODO_API_ADDR",
	"log.file":               "TODO_LOG_FILE",
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Network:   "localhost",
		WalletURL: "ws://127.0.0.1:1248",
		Contract: ContractConfig{
			Artifact: "contract-address.json",
		},
		Pinata: PinataConfig{
			APIURL:     "https://api.pinata.cloud",
			GatewayURL: "https://gateway.pinata.cloud",
			Timeout:    15 * time.Second,
		},
		Sync: SyncConfig{
			PollInterval:     time.Second,
			ConfirmInterval:  time.Second,
			FetchConcurrency: 8,
		},
		API: APIConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			File: filepath.Join(os.TempDir(), "tododapp.log"),
		},
	}
}

// DefaultPath returns ~/.config/tododapp/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tododapp", "config.yaml")
	}
	return filepath.Join(home, ".config", "tododapp", "config.yaml")
}

// Load reads the configuration. An empty path means DefaultPath, which may be absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ResolveNetwork returns the selected network with its RPC endpoint filled in
func (c *Config) ResolveNetwork() (domain.Network, error) {
	n, err := domain.LookupNetwork(c.Network)
	if err != nil {
		return domain.Network{}, err
	}

	if c.RPCURL != "" {
		n.RPCURL = c.RPCURL
		return n, nil
	}
	if strings.Contains(n.RPCURL, "%s") && c.InfuraAPIKey == "" {
		return domain.Network{}, fmt.Errorf("network %s needs INFURA_API_KEY or rpc_url", n.Name)
	}
	n.RPCURL = n.ResolveRPCURL(c.InfuraAPIKey)
	return n, nil
}

// artifact is the shape of the deploy script's address file
type artifact struct {
	TodoList string `json:"TodoList"`
}

// ContractAddress returns the configured address, falling back to the deploy artifact
func (c *Config) ContractAddress() (string, error) {
	if c.Contract.Address != "" {
		return c.Contract.Address, nil
	}
	if c.Contract.Artifact == "" {
		return "", errors.New("no contract address configured")
	}

	data, err := os.ReadFile(c.Contract.Artifact)
	if err != nil {
		return "", fmt.Errorf("no contract address configured and artifact unreadable: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", c.Contract.Artifact, err)
	}
	if a.TodoList == "" {
		return "", fmt.Errorf("%s has no TodoList address", c.Contract.Artifact)
	}
	return a.TodoList, nil
}
