package config

import (
	"fmt"
	"strings"
)

// StoreConfig locates the JSON document holding the product collection.
type StoreConfig struct {
	Path            string `koanf:"path"`
	CreateIfMissing bool   `koanf:"createIfMissing"`
}

// String returns a string representation of the StoreConfig.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  store.path: %s\n", c.Path))
	b.WriteString(fmt.Sprintf("  store.createIfMissing: %t\n", c.CreateIfMissing))
	return b.String()
}

func (c *StoreConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("store path is not configured")
	}
	return nil
}
