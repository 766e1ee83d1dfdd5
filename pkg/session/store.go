package session

import "context"

// Store persists string values per visitor.
type Store interface {
	// Get returns ErrKeyNotFound when the visitor has no value under key.
	Get(ctx context.Context, visitorID, key string) (string, error)

	// Set stores value and refreshes the visitor's idle deadline.
	Set(ctx context.Context, visitorID, key, value string) error

	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, visitorID string, keys ...string) error

	// Clear removes every value of the visitor.
	Clear(ctx context.Context, visitorID string) error
}
