// Package config loads the alpacamcp configuration from an optional YAML
// file and environment variables. Environment values always win over the
// file; the file is a convenience for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the alpacamcp adapter.
type Config struct {
	Alpaca    Alpaca    `yaml:"alpaca"`
	Risk      Risk      `yaml:"risk"`
	Universe  Universe  `yaml:"universe"`
	Analytics Analytics `yaml:"analytics"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

// Alpaca holds credentials and the endpoint for the Alpaca broker API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

// Risk defines the pre-trade order limits.
type Risk struct {
	MaxPositionSize  int64   `yaml:"max_position_size"`
	MaxPositionValue float64 `yaml:"max_position_value"`
}

// Universe points at the optional allow-list file. A missing or empty file
// disables the symbol restriction.
type Universe struct {
	Path string `yaml:"path"`
}

// Analytics configures the optional portfolio-analysis event sink.
type Analytics struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// Server holds the HTTP transport listener configuration.
type Server struct {
	Port int `yaml:"port"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Defaults mirrored from the paper-trading setup.
const (
	DefaultBaseURL          = "https://paper-api.alpaca.markets"
	DefaultMaxPositionSize  = 1000
	DefaultMaxPositionValue = 10000
	DefaultUniversePath     = "data/universe_liquid.txt"
	DefaultPort             = 8000
)

// Load builds the configuration. When path is non-empty the YAML file at
// that location is parsed first; defaults fill unset fields and environment
// variable overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyDefaults(cfg)
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Alpaca.BaseURL == "" {
		cfg.Alpaca.BaseURL = DefaultBaseURL
	}
	if cfg.Risk.MaxPositionSize == 0 {
		cfg.Risk.MaxPositionSize = DefaultMaxPositionSize
	}
	if cfg.Risk.MaxPositionValue == 0 {
		cfg.Risk.MaxPositionValue = DefaultMaxPositionValue
	}
	if cfg.Universe.Path == "" {
		cfg.Universe.Path = DefaultUniversePath
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set. Credentials
// accept both the ALPACA_* and the SDK-canonical APCA_* naming schemes;
// the first non-empty value wins.
func applyEnvOverrides(cfg *Config) error {
	if v := firstNonEmpty(
		os.Getenv("ALPACA_API_KEY"),
		os.Getenv("ALPACA_API_KEY_ID"),
		os.Getenv("APCA_API_KEY_ID"),
	); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := firstNonEmpty(
		os.Getenv("ALPACA_SECRET_KEY"),
		os.Getenv("ALPACA_API_SECRET_KEY"),
		os.Getenv("APCA_API_SECRET_KEY"),
	); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := firstNonEmpty(
		os.Getenv("ALPACA_BASE_URL"),
		os.Getenv("APCA_API_BASE_URL"),
	); v != "" {
		cfg.Alpaca.BaseURL = v
	}

	if v := os.Getenv("MAX_POSITION_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing MAX_POSITION_SIZE %q: %w", v, err)
		}
		cfg.Risk.MaxPositionSize = n
	}

	if v := os.Getenv("MAX_POSITION_VALUE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing MAX_POSITION_VALUE %q: %w", v, err)
		}
		cfg.Risk.MaxPositionValue = f
	}

	if v := os.Getenv("ALLOWED_SYMBOLS_FILE"); v != "" {
		cfg.Universe.Path = v
	}

	if v := os.Getenv("ANALYTICS_URL"); v != "" {
		cfg.Analytics.URL = v
	}
	if v := os.Getenv("ANALYTICS_TOKEN"); v != "" {
		cfg.Analytics.Token = v
	}

	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT %q: %w", v, err)
		}
		cfg.Server.Port = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
