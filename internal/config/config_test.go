package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/dividend-calculator/internal/modules/currency"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 10, cfg.DefaultHorizon)
	assert.Equal(t, 100, cfg.MaxHorizon)
	assert.Equal(t, 1000, cfg.MaxBatchSize)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, currency.StyleCode, cfg.Currency())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DDM_PORT", "9090")
	t.Setenv("DDM_LOG_LEVEL", "debug")
	t.Setenv("DDM_LOG_PRETTY", "false")
	t.Setenv("DDM_DEV_MODE", "true")
	t.Setenv("DDM_DEFAULT_HORIZON", "20")
	t.Setenv("DDM_MAX_HORIZON", "50")
	t.Setenv("DDM_MAX_BATCH_SIZE", "25")
	t.Setenv("DDM_WORKERS", "3")
	t.Setenv("DDM_CURRENCY_STYLE", "symbol")
	t.Setenv("DDM_REQUEST_TIMEOUT", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 20, cfg.DefaultHorizon)
	assert.Equal(t, 50, cfg.MaxHorizon)
	assert.Equal(t, 25, cfg.MaxBatchSize)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, currency.StyleSymbol, cfg.Currency())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_ParseError(t *testing.T) {
	t.Setenv("DDM_PORT", "not-a-number")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process environment")
}

func TestFromEnv_ValidationError(t *testing.T) {
	t.Setenv("DDM_DEFAULT_HORIZON", "200")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:           8001,
			DefaultHorizon: 10,
			MaxHorizon:     100,
			MaxBatchSize:   1000,
			Workers:        4,
			CurrencyStyle:  "code",
			RequestTimeout: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "port must be between"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "port must be between"},
		{"max horizon zero", func(c *Config) { c.MaxHorizon = 0 }, "max horizon must be positive"},
		{"default above max", func(c *Config) { c.DefaultHorizon = 101 }, "default horizon must be between 1 and 100"},
		{"default zero", func(c *Config) { c.DefaultHorizon = 0 }, "default horizon"},
		{"batch zero", func(c *Config) { c.MaxBatchSize = 0 }, "max batch size must be positive"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must be positive"},
		{"unknown currency style", func(c *Config) { c.CurrencyStyle = "yen" }, "unknown currency style"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_CurrencyFallsBackToCode(t *testing.T) {
	cfg := Config{CurrencyStyle: "bogus"}
	assert.Equal(t, currency.StyleCode, cfg.Currency())
}
