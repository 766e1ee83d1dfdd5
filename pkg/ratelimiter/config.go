package ratelimiter

import (
	"fmt"
	"time"
)

type Config struct {
	// Attempts allowed per key within one window.
	Attempts int           `env:"RATELIMIT_ATTEMPTS" envDefault:"10"`
	Window   time.Duration `env:"RATELIMIT_WINDOW" envDefault:"1m"`

	// Backend selects the store: "memory", "redis" or "off".
	Backend string `env:"RATELIMIT_BACKEND" envDefault:"memory"`
}

func (c Config) validate() error {
	if c.Attempts <= 0 {
		return fmt.Errorf("%w: attempts must be positive, got %d", ErrInvalidConfig, c.Attempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}
