package config

import (
	"context"
	"fmt"
	"time"
)

// maxShutdownTimeout bounds how long the process may linger after a stop signal.
const maxShutdownTimeout = 5 * time.Minute

// ShutdownConfig is the grace period given to each server and the tracer provider on exit.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return fmt.Sprintf("\n--- Shutdown ---\n  shutdown.timeout: %s (max %s)\n", c.Timeout, maxShutdownTimeout)
}

func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("shutdown timeout is not configured")
	case c.Timeout > maxShutdownTimeout:
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, maxShutdownTimeout)
	}
	return nil
}

// Context returns a fresh context bounded by the grace period. It does not derive from the
// signal context, which is already cancelled when shutdown starts.
func (c *ShutdownConfig) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Timeout)
}
