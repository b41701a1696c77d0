package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/a9sk/hypr-cycle/internal/compositor"
	"github.com/a9sk/hypr-cycle/internal/logging"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Backend != "" && !slices.Contains(compositor.Backends(), c.Backend) {
		return fmt.Errorf("unknown backend %q (valid: %s)", c.Backend, strings.Join(compositor.Backends(), ", "))
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", time.Duration(c.Timeout))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}
