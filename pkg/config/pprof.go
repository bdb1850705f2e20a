package config

import (
	"fmt"
	"net"
	"strconv"
)

// PProfConfig enables the profiling listener. It binds to a separate address so the
// profiling handlers are never reachable through the product API port.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) String() string {
	state := "disabled"
	if c.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("\n--- PProf ---\n  pprof: %s\n  pprof.addr: %s\n", state, c.Addr)
}

// Validate checks the listen address only when profiling is switched on.
func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("pprof is enabled but address is not configured")
	}
	_, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return fmt.Errorf("invalid pprof address %q: %w", c.Addr, err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid pprof port %q", port)
	}
	return nil
}
