package config

import (
	"fmt"
	"strings"
)

// MetricsConfig controls the Prometheus endpoint served next to the API.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// String returns a string representation of the MetricsConfig.
func (c *MetricsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Metrics ---\n")
	b.WriteString(fmt.Sprintf("  metrics.enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  metrics.path: %s\n", c.Path))
	return b.String()
}

func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", c.Path)
	}
	return nil
}
