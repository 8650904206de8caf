package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tododapp/internal/domain"
)

// clearEnv neutralizes overrides inherited from the developer's shell
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Network != "localhost" {
		t.Errorf("expected network 'localhost', got '%s'", cfg.Network)
	}
	if cfg.Sync.PollInterval != time.Second {
		t.Errorf("expected 1s poll interval, got %s", cfg.Sync.PollInterval)
	}
	if cfg.Pinata.Timeout != 15*time.Second {
		t.Errorf("expected 15s pinata timeout, got %s", cfg.Pinata.Timeout)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
network: sepolia
infura_api_key: from-file
pinata:
  api_key: file-key
  timeout: 5s
sync:
  poll_interval: 3s
`)
	t.Setenv("TODO_PINATA_API_KEY", "env-key")
	t.Setenv("TODO_CONTRACT_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Network != "sepolia" {
		t.Errorf("expected network from file, got %s", cfg.Network)
	}
	if cfg.Pinata.APIKey != "env-key" {
		t.Errorf("expected env to override file, got %s", cfg.Pinata.APIKey)
	}
	if cfg.Pinata.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Pinata.Timeout)
	}
	if cfg.Sync.PollInterval != 3*time.Second {
		t.Errorf("expected 3s poll interval, got %s", cfg.Sync.PollInterval)
	}
	if cfg.Pinata.GatewayURL != "https://gateway.pinata.cloud" {
		t.Errorf("expected default gateway kept, got %s", cfg.Pinata.GatewayURL)
	}
	if cfg.Contract.Address != "0x5FbDB2315678afecb367f032d93F642f64180aa3" {
		t.Errorf("expected contract address from env, got %s", cfg.Contract.Address)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantURL string
		wantID  uint64
		wantErr bool
	}{
		{
			name:    "localhost default",
			cfg:     Config{Network: "localhost"},
			wantURL: "http://127.0.0.1:8545",
			wantID:  domain.HardhatChainID,
		},
		{
			name:    "sepolia via infura",
			cfg:     Config{Network: "sepolia", InfuraAPIKey: "abc"},
			wantURL: "https://sepolia.infura.io/v3/abc",
			wantID:  domain.SepoliaChainID,
		},
		{
			name:    "sepolia without key",
			cfg:     Config{Network: "sepolia"},
			wantErr: true,
		},
		{
			name:    "explicit rpc url",
			cfg:     Config{Network: "sepolia", RPCURL: "http://node:8545"},
			wantURL: "http://node:8545",
			wantID:  domain.SepoliaChainID,
		},
		{
			name:    "unknown network",
			cfg:     Config{Network: "mainnet"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.cfg.ResolveNetwork()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", n)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.RPCURL != tt.wantURL || n.ChainID != tt.wantID {
				t.Errorf("expected %s/%d, got %s/%d", tt.wantURL, tt.wantID, n.RPCURL, n.ChainID)
			}
		})
	}
}

func TestContractAddress(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "contract-address.json", `{"TodoList":"0x5FbDB2315678afecb367f032d93F642f64180aa3"}`)
	empty := writeFile(t, dir, "empty.json", `{}`)

	tests := []struct {
		name    string
		cfg     ContractConfig
		want    string
		wantErr bool
	}{
		{name: "explicit address wins", cfg: ContractConfig{Address: "0xabc", Artifact: good}, want: "0xabc"},
		{name: "from artifact", cfg: ContractConfig{Artifact: good}, want: "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		{name: "artifact without entry", cfg: ContractConfig{Artifact: empty}, wantErr: true},
		{name: "missing artifact", cfg: ContractConfig{Artifact: filepath.Join(dir, "missing.json")}, wantErr: true},
		{name: "nothing configured", cfg: ContractConfig{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Contract: tt.cfg}
			got, err := cfg.ContractAddress()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(content), "poll_interval: 1s") {
		t.Errorf("expected durations written as strings, got:\n%s", content)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written default failed: %v", err)
	}
	if cfg.Sync.PollInterval != time.Second || cfg.Network != "localhost" {
		t.Errorf("written default does not round-trip: %+v", cfg)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected refusal to overwrite an existing config")
	}
}
