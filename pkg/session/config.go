package session

import "time"

// Config holds key-value store configuration.
type Config struct {
	// CookieName is the name of the visitor cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// VisitorTTL is how long an idle visitor's values are kept.
	VisitorTTL time.Duration `env:"SESSION_VISITOR_TTL" envDefault:"720h"`

	// CleanupInterval for idle visitors in MemoryStore (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// Backend selects the store: "memory" or "redis".
	Backend string `env:"SESSION_BACKEND" envDefault:"memory"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		VisitorTTL:      30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		Backend:         "memory",
	}
}
