package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := configloader.Load[*Config]("product",
		configloader.WithDefaults(Defaults()),
		configloader.WithConfigFile(filepath.Join(dir, "config.yaml")),
		configloader.WithEnvFile(filepath.Join(dir, ".env")),
	)
	require.NoError(t, err)
	return cfg
}

func Test_Defaults_AreValid(t *testing.T) {
	// when
	cfg := loadDefaults(t)
	// then
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, int64(1<<20), cfg.HTTPServer.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout.Read)
	assert.Equal(t, "data/products.json", cfg.Store.Path)
	assert.False(t, cfg.Store.CreateIfMissing)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
}

func Test_Environment_Overrides(t *testing.T) {
	// given
	t.Setenv("PRODUCT_STORE_PATH", "/var/lib/products.json")
	t.Setenv("PRODUCT_LOG_LEVEL", "debug")
	// when
	cfg := loadDefaults(t)
	// then
	assert.Equal(t, "/var/lib/products.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectError string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.HTTPServer.Port = -1 }, expectError: "invalid HTTP server port"},
		{name: "no store path", mutate: func(c *Config) { c.Store.Path = "" }, expectError: "store path is not configured"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, expectError: "unknown log level"},
		{name: "pprof without addr", mutate: func(c *Config) { c.PProf.Enabled = true; c.PProf.Addr = "" }, expectError: "pprof"},
		{name: "metrics bad path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, expectError: "metrics path"},
		{name: "telemetry without endpoint", mutate: func(c *Config) { c.Telemetry.Enabled = true }, expectError: "OTel endpoint"},
		{name: "no shutdown timeout", mutate: func(c *Config) { c.Shutdown.Timeout = 0 }, expectError: "shutdown timeout"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			cfg := loadDefaults(t)
			tc.mutate(cfg)
			// when
			err := cfg.Validate()
			// then
			if tc.expectError == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.expectError)
		})
	}
}

func Test_Config_String(t *testing.T) {
	cfg := loadDefaults(t)

	out := cfg.String()

	assert.Contains(t, out, "server.port: 8080")
	assert.Contains(t, out, "store.path: data/products.json")
	assert.Contains(t, out, "metrics.enabled: true")
	assert.Contains(t, out, "shutdown.timeout: 10s")
}
