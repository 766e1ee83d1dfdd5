package ratelimiter

import (
	"context"
	"time"
)

// Store counts hits per key in fixed windows.
type Store interface {
	// Hit records one hit and returns the hit count of the current window
	// and the time it ends. The first hit opens a window of length window.
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	// Reset forgets the key.
	Reset(ctx context.Context, key string) error
}
