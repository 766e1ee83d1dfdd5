package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "portal:visitor:"

// RedisStore implements Store with one Redis hash per visitor. Every write
// pushes the hash expiry out by the visitor ttl.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: defaultRedisPrefix, ttl: ttl}
}

func (s *RedisStore) key(visitorID string) string {
	return s.prefix + visitorID
}

func (s *RedisStore) Get(ctx context.Context, visitorID, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.key(visitorID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: redis hget: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, visitorID, key, value string) error {
	k := s.key(visitorID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k, key, value)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: redis hset: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(visitorID), keys...).Err(); err != nil {
		return fmt.Errorf("session: redis hdel: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, s.key(visitorID)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
