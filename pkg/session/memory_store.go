package session

import (
	"context"
	"sync"
	"time"
)

type visitorEntry struct {
	values  map[string]string
	touched time.Time
}

// MemoryStore implements Store with an in-process map.
type MemoryStore struct {
	mu       sync.RWMutex
	visitors map[string]*visitorEntry
	ttl      time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once
}

// NewMemoryStore creates a store that forgets visitors idle longer than ttl.
// A positive cleanupInterval starts a background sweeper; stop it with Close.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		visitors: make(map[string]*visitorEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.cleanupLoop()
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, visitorID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.visitors[visitorID]
	if !ok || s.expired(e, time.Now()) {
		return "", ErrKeyNotFound
	}
	v, ok := e.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.visitors[visitorID]
	if !ok || s.expired(e, now) {
		e = &visitorEntry{values: make(map[string]string)}
		s.visitors[visitorID] = e
	}
	e.values[key] = value
	e.touched = now
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, visitorID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.visitors[visitorID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(e.values, k)
	}
	if len(e.values) == 0 {
		delete(s.visitors, visitorID)
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.visitors, visitorID)
	return nil
}

// Len reports the number of live visitors.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visitors)
}

// DeleteExpired drops visitors idle longer than the ttl.
func (s *MemoryStore) DeleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.visitors {
		if s.expired(e, now) {
			delete(s.visitors, id)
		}
	}
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
	return nil
}

func (s *MemoryStore) expired(e *visitorEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touched) > s.ttl
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.DeleteExpired()
		case <-s.done:
			return
		}
	}
}
