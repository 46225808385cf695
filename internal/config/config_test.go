package config

import (
	"os"
	"testing"
)

// credEnvVars are every environment variable the loader inspects for
// credentials; tests clear them to avoid interference from the host.
var credEnvVars = []string{
	"ALPACA_API_KEY", "ALPACA_API_KEY_ID", "APCA_API_KEY_ID",
	"ALPACA_SECRET_KEY", "ALPACA_API_SECRET_KEY", "APCA_API_SECRET_KEY",
	"ALPACA_BASE_URL", "APCA_API_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	all := append([]string{}, credEnvVars...)
	all = append(all,
		"MAX_POSITION_SIZE", "MAX_POSITION_VALUE", "ALLOWED_SYMBOLS_FILE",
		"ANALYTICS_URL", "ANALYTICS_TOKEN", "PORT", "LOG_LEVEL",
	)
	for _, k := range all {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.BaseURL != DefaultBaseURL {
		t.Errorf("Alpaca.BaseURL = %q, want %q", cfg.Alpaca.BaseURL, DefaultBaseURL)
	}
	if cfg.Risk.MaxPositionSize != DefaultMaxPositionSize {
		t.Errorf("Risk.MaxPositionSize = %d, want %d", cfg.Risk.MaxPositionSize, DefaultMaxPositionSize)
	}
	if cfg.Risk.MaxPositionValue != DefaultMaxPositionValue {
		t.Errorf("Risk.MaxPositionValue = %f, want %d", cfg.Risk.MaxPositionValue, DefaultMaxPositionValue)
	}
	if cfg.Universe.Path != DefaultUniversePath {
		t.Errorf("Universe.Path = %q, want %q", cfg.Universe.Path, DefaultUniversePath)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	yamlContent := []byte(`
alpaca:
  api_key: "file-key"
  api_secret: "file-secret"
  base_url: "https://api.alpaca.markets"
risk:
  max_position_size: 250
  max_position_value: 5000.5
universe:
  path: "/tmp/universe.txt"
analytics:
  url: "https://analytics.example.com/events"
  token: "file-token"
server:
  port: 9000
logging:
  level: "debug"
`)

	tmpFile, err := os.CreateTemp("", "alpacamcp-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "file-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "file-key")
	}
	if cfg.Alpaca.BaseURL != "https://api.alpaca.markets" {
		t.Errorf("Alpaca.BaseURL = %q, want %q", cfg.Alpaca.BaseURL, "https://api.alpaca.markets")
	}
	if cfg.Risk.MaxPositionSize != 250 {
		t.Errorf("Risk.MaxPositionSize = %d, want %d", cfg.Risk.MaxPositionSize, 250)
	}
	if cfg.Risk.MaxPositionValue != 5000.5 {
		t.Errorf("Risk.MaxPositionValue = %f, want %f", cfg.Risk.MaxPositionValue, 5000.5)
	}
	if cfg.Universe.Path != "/tmp/universe.txt" {
		t.Errorf("Universe.Path = %q, want %q", cfg.Universe.Path, "/tmp/universe.txt")
	}
	if cfg.Analytics.URL != "https://analytics.example.com/events" {
		t.Errorf("Analytics.URL = %q, want %q", cfg.Analytics.URL, "https://analytics.example.com/events")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9000)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("APCA_API_KEY_ID", "apca-key")
	t.Setenv("APCA_API_SECRET_KEY", "apca-secret")
	t.Setenv("MAX_POSITION_SIZE", "77")
	t.Setenv("MAX_POSITION_VALUE", "1234.5")
	t.Setenv("ALLOWED_SYMBOLS_FILE", "/env/universe.txt")
	t.Setenv("PORT", "8123")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "apca-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "apca-key")
	}
	if cfg.Alpaca.APISecret != "apca-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q", cfg.Alpaca.APISecret, "apca-secret")
	}
	if cfg.Risk.MaxPositionSize != 77 {
		t.Errorf("Risk.MaxPositionSize = %d, want %d", cfg.Risk.MaxPositionSize, 77)
	}
	if cfg.Risk.MaxPositionValue != 1234.5 {
		t.Errorf("Risk.MaxPositionValue = %f, want %f", cfg.Risk.MaxPositionValue, 1234.5)
	}
	if cfg.Universe.Path != "/env/universe.txt" {
		t.Errorf("Universe.Path = %q, want %q", cfg.Universe.Path, "/env/universe.txt")
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8123)
	}
}

func TestLoadEnvPrecedence(t *testing.T) {
	clearEnv(t)

	// ALPACA_API_KEY is checked before the APCA_ canonical name.
	t.Setenv("ALPACA_API_KEY", "preferred-key")
	t.Setenv("APCA_API_KEY_ID", "fallback-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "preferred-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (ALPACA_API_KEY wins)", cfg.Alpaca.APIKey, "preferred-key")
	}
}

func TestLoadBadNumericEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("MAX_POSITION_SIZE", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() should fail on a non-numeric MAX_POSITION_SIZE")
	}
}
