package authsession

import (
	"bytes"
	"encoding/json"
	"sync"
)

// State is the in-memory session of one visitor. Concurrent Provider calls
// on the same State do not queue; the last one to finish wins.
type State struct {
	mu      sync.RWMutex
	user    json.RawMessage
	loading bool
}

// NewState returns the initial state: loading, no user.
func NewState() *State {
	return &State{loading: true}
}

// User returns a copy of the user record, or nil.
func (s *State) User() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.user)
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.user) > 0
}

// Profile decodes the user record into a map for display. It returns nil
// when there is no user or the record is not a JSON object.
func (s *State) Profile() map[string]any {
	user := s.User()
	if len(user) == 0 {
		return nil
	}
	var m map[string]any
	if json.Unmarshal(user, &m) != nil {
		return nil
	}
	return m
}

func (s *State) setUser(user json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = bytes.Clone(user)
}

func (s *State) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
