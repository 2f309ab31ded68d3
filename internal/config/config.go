// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/aristath/dividend-calculator/internal/modules/currency"
)

// EnvPrefix prefixes every environment variable, e.g. DDM_PORT
const EnvPrefix = "DDM"

// Config holds application configuration
type Config struct {
	Port           int           `envconfig:"PORT" default:"8001"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool          `envconfig:"LOG_PRETTY" default:"true"`
	DevMode        bool          `envconfig:"DEV_MODE" default:"false"`
	DefaultHorizon int           `envconfig:"DEFAULT_HORIZON" default:"10"` // Years shown when a request has no horizon
	MaxHorizon     int           `envconfig:"MAX_HORIZON" default:"100"`
	MaxBatchSize   int           `envconfig:"MAX_BATCH_SIZE" default:"1000"`
	Workers        int           `envconfig:"WORKERS" default:"0"` // 0 = runtime.NumCPU()
	CurrencyStyle  string        `envconfig:"CURRENCY_STYLE" default:"code"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv parses the process environment without touching .env files
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate rejects inconsistent configuration values
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxHorizon < 1 {
		return fmt.Errorf("max horizon must be positive, got %d", c.MaxHorizon)
	}
	if c.DefaultHorizon < 1 || c.DefaultHorizon > c.MaxHorizon {
		return fmt.Errorf("default horizon must be between 1 and %d, got %d", c.MaxHorizon, c.DefaultHorizon)
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("max batch size must be positive, got %d", c.MaxBatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := currency.ParseStyle(c.CurrencyStyle); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Currency returns the configured currency style
func (c *Config) Currency() currency.Style {
	style, err := currency.ParseStyle(c.CurrencyStyle)
	if err != nil {
		return currency.StyleCode
	}
	return style
}
