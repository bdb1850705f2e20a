package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Store struct {
		Path string `koanf:"path"`
	} `koanf:"store"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	Shutdown struct {
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"shutdown"`
}

func (c *testConfig) Validate() error {
	if c.Store.Path == "" {
		return errors.New("store path is not configured")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load_Layers(t *testing.T) {
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "store:\n  path: from-yaml.json\nlog:\n  level: info\nshutdown:\n  timeout: 5s\n")
	envFile := writeFile(t, dir, ".env", "TESTSVC_LOG_LEVEL=warn\nOTHER_LOG_LEVEL=error\n")

	testCases := []struct {
		name             string
		opts             []Option
		env              map[string]string
		expectedPath     string
		expectedLevel    string
		expectedShutdown time.Duration
	}{
		{
			name:             "defaults only",
			opts:             []Option{WithDefaults(map[string]any{"store.path": "default.json", "shutdown.timeout": "1s"}), WithConfigFile(filepath.Join(dir, "missing.yaml")), WithEnvFile(filepath.Join(dir, "missing.env"))},
			expectedPath:     "default.json",
			expectedShutdown: time.Second,
		},
		{
			name:             "yaml overrides defaults",
			opts:             []Option{WithDefaults(map[string]any{"store.path": "default.json"}), WithConfigFile(yamlFile), WithEnvFile(filepath.Join(dir, "missing.env"))},
			expectedPath:     "from-yaml.json",
			expectedLevel:    "info",
			expectedShutdown: 5 * time.Second,
		},
		{
			name:             ".env overrides yaml and ignores foreign prefixes",
			opts:             []Option{WithConfigFile(yamlFile), WithEnvFile(envFile)},
			expectedPath:     "from-yaml.json",
			expectedLevel:    "warn",
			expectedShutdown: 5 * time.Second,
		},
		{
			name:             "process env has the highest priority",
			opts:             []Option{WithConfigFile(yamlFile), WithEnvFile(envFile)},
			env:              map[string]string{"TESTSVC_STORE_PATH": "from-env.json", "TESTSVC_LOG_LEVEL": "debug"},
			expectedPath:     "from-env.json",
			expectedLevel:    "debug",
			expectedShutdown: 5 * time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			// when
			cfg, err := Load[*testConfig]("testsvc", tc.opts...)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedPath, cfg.Store.Path)
			assert.Equal(t, tc.expectedLevel, cfg.Log.Level)
			assert.Equal(t, tc.expectedShutdown, cfg.Shutdown.Timeout)
		})
	}
}

func Test_Load_ValidationFails(t *testing.T) {
	dir := t.TempDir()

	_, err := Load[*testConfig]("testsvc", WithConfigFile(filepath.Join(dir, "missing.yaml")), WithEnvFile(filepath.Join(dir, "missing.env")))

	assert.ErrorContains(t, err, "config validation failed")
	assert.ErrorContains(t, err, "store path is not configured")
}
