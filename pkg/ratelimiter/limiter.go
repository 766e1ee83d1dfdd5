package ratelimiter

import (
	"context"
	"errors"
)

type Limiter struct {
	store Store
	cfg   Config
}

func New(store Store, cfg Config) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

// Allow records a hit for key. Remaining goes negative once the key is
// over the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.store.Hit(ctx, key, l.cfg.Window)
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}
	return Result{
		Limit:     l.cfg.Attempts,
		Remaining: l.cfg.Attempts - count,
		ResetAt:   resetAt,
	}, nil
}

func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.store.Reset(ctx, key); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
