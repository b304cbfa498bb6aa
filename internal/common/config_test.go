package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Clients.Binance.BaseURL != "https://api.binance.com" {
		t.Errorf("Binance base URL = %s", cfg.Clients.Binance.BaseURL)
	}
	if cfg.Clients.Binance.GetTimeout() != 30*time.Second {
		t.Errorf("Binance timeout = %v, want 30s", cfg.Clients.Binance.GetTimeout())
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("CRYPTOFOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want 9090", cfg.Server.Port)
	}
}

func TestConfig_CredentialEnvOverridesFile(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "env-key")
	t.Setenv("BINANCE_API_SECRET", "env-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "cryptofolio.toml")
	content := `
environment = "production"

[clients.binance]
api_key = "file-key"
api_secret = "file-secret"
rate_limit = 5

[server]
port = 9000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Clients.Binance.APIKey != "env-key" {
		t.Errorf("APIKey = %s, env must outrank the file", cfg.Clients.Binance.APIKey)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.Clients.Binance.RateLimit != 5 {
		t.Errorf("RateLimit = %d, want 5 from file", cfg.Clients.Binance.RateLimit)
	}
	if !cfg.IsProduction() {
		t.Error("environment from file must apply")
	}
	if !cfg.Clients.Binance.HasCredentials() {
		t.Error("credentials must be detected")
	}
}

func TestConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/cryptofolio.toml")
	if err != nil {
		t.Fatalf("LoadConfig must skip missing files: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("defaults must survive a missing file, port = %d", cfg.Server.Port)
	}
}

func TestBinanceConfig_BadTimeoutFallsBack(t *testing.T) {
	cfg := BinanceConfig{Timeout: "not-a-duration"}
	if cfg.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout = %v, want 30s fallback", cfg.GetTimeout())
	}
}
