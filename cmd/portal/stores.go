package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authportal/pkg/httpserver"
	"github.com/dmitrymomot/authportal/pkg/ratelimiter"
	"github.com/dmitrymomot/authportal/pkg/redis"
	"github.com/dmitrymomot/authportal/pkg/session"
)

const limiterCleanupInterval = time.Minute

// stores builds the storage backends and shares one Redis connection
// between them.
type stores struct {
	cfg     configs
	log     *slog.Logger
	client  *goredis.Client
	checks  map[string]httpserver.Check
	closers []io.Closer
}

func newStores(cfg configs, log *slog.Logger) *stores {
	return &stores{cfg: cfg, log: log, checks: make(map[string]httpserver.Check)}
}

func (s *stores) redis(ctx context.Context) (*goredis.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := redis.Connect(ctx, s.cfg.redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	s.client = client
	s.checks["redis"] = redis.Healthcheck(client)
	s.closers = append(s.closers, client)
	return client, nil
}

// visitors picks the visitor store backend.
func (s *stores) visitors(ctx context.Context) (session.Store, error) {
	switch s.cfg.session.Backend {
	case "redis":
		client, err := s.redis(ctx)
		if err != nil {
			return nil, err
		}
		s.log.Info("visitor store ready", slog.String("backend", "redis"))
		return session.NewRedisStore(client, s.cfg.session.VisitorTTL), nil
	case "", "memory":
		s.log.Info("visitor store ready", slog.String("backend", "memory"))
		store := session.NewMemoryStore(s.cfg.session.VisitorTTL, s.cfg.session.CleanupInterval)
		s.closers = append(s.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", s.cfg.session.Backend)
	}
}

// limiter builds the login throttle, nil when disabled.
func (s *stores) limiter(ctx context.Context) (*ratelimiter.Limiter, error) {
	var store ratelimiter.Store
	switch s.cfg.ratelimit.Backend {
	case "off":
		return nil, nil
	case "redis":
		client, err := s.redis(ctx)
		if err != nil {
			return nil, err
		}
		store = ratelimiter.NewRedisStore(client)
	case "", "memory":
		mem := ratelimiter.NewMemoryStore(limiterCleanupInterval)
		s.closers = append(s.closers, mem)
		store = mem
	default:
		return nil, fmt.Errorf("unknown RATELIMIT_BACKEND %q", s.cfg.ratelimit.Backend)
	}
	return ratelimiter.New(store, s.cfg.ratelimit)
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}
