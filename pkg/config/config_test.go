package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Address())
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, RangeConfig{Min: 0, Max: 100}, cfg.Numbers.Even)
	assert.Equal(t, RangeConfig{Min: 0, Max: 100}, cfg.Numbers.Random)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("THENUMBERS_SERVER_PORT", "8080")
	t.Setenv("THENUMBERS_SERVER_DEBUG", "true")
	t.Setenv("THENUMBERS_SERVER_CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MIN", "-10")
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MAX", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, RangeConfig{Min: -10, Max: 10}, cfg.Numbers.Random)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 6000
  shutdown_timeout: 3s
log:
  format: json
numbers:
  even:
    min: 10
    max: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, RangeConfig{Min: 10, Max: 20}, cfg.Numbers.Even)
	assert.Equal(t, RangeConfig{Min: 0, Max: 100}, cfg.Numbers.Random)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidRange(t *testing.T) {
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MIN", "50")
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MAX", "1")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Host: "0.0.0.0", Port: 5000, ShutdownTimeout: time.Second},
			Log:     LogConfig{Level: "info", Format: "text"},
			Numbers: NumbersConfig{Even: RangeConfig{Max: 10}, Random: RangeConfig{Max: 10}},
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, false},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"uppercase log level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
		{"single odd even range", func(c *Config) { c.Numbers.Even = RangeConfig{Min: 3, Max: 3} }, false},
		{"single even even range", func(c *Config) { c.Numbers.Even = RangeConfig{Min: 4, Max: 4} }, true},
		{"inverted random range", func(c *Config) { c.Numbers.Random = RangeConfig{Min: 2, Max: 1} }, false},
		{"full int random range", func(c *Config) { c.Numbers.Random = RangeConfig{Min: math.MinInt, Max: math.MaxInt} }, false},
		{"full int even range", func(c *Config) { c.Numbers.Even = RangeConfig{Min: math.MinInt, Max: math.MaxInt} }, false},
		{"widest random range", func(c *Config) { c.Numbers.Random = RangeConfig{Min: 0, Max: math.MaxInt - 1} }, true},
		{"metrics path without slash", func(c *Config) { c.Metrics.Path = "metrics" }, false},
		{"metrics path with parameter", func(c *Config) { c.Metrics.Path = "/:x" }, false},
		{"metrics path with wildcard", func(c *Config) { c.Metrics.Path = "/metrics/*all" }, false},
		{"metrics disabled ignores path", func(c *Config) { c.Metrics = MetricsConfig{} }, true},
		{"telemetry without endpoint", func(c *Config) { c.Telemetry.Enabled = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRangeValidateEven(t *testing.T) {
	assert.NoError(t, RangeConfig{Min: 1, Max: 2}.ValidateEven())
	assert.NoError(t, RangeConfig{Min: -3, Max: -1}.ValidateEven())
	assert.ErrorIs(t, RangeConfig{Min: -1, Max: -1}.ValidateEven(), ErrInvalidRange)
	assert.ErrorIs(t, RangeConfig{Min: 5, Max: 4}.ValidateEven(), ErrInvalidRange)
	assert.ErrorIs(t, RangeConfig{Min: math.MinInt, Max: math.MaxInt}.ValidateEven(), ErrInvalidRange)
	assert.ErrorIs(t, RangeConfig{Min: -1, Max: math.MaxInt - 1}.Validate(), ErrInvalidRange)
	assert.NoError(t, RangeConfig{Min: math.MaxInt - 1, Max: math.MaxInt}.ValidateEven())
}

func TestLoadRejectsOverflowingRange(t *testing.T) {
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MIN", "-9223372036854775808")
	t.Setenv("THENUMBERS_NUMBERS_RANDOM_MAX", "9223372036854775807")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidRange)
}
