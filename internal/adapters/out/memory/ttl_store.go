// Package memory provides an in-process TTL store for tests and single-node
// development setups where running Redis is not worth the trouble.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// TTLStore implements ports.TTLStore on a mutex-guarded map. Expired entries
// are dropped lazily on access; there is no background sweeper.
type TTLStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewTTLStore creates an empty in-memory TTL store.
func NewTTLStore() *TTLStore {
	return &TTLStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewTTLStoreWithClock creates a store with an injectable clock for expiry
// tests.
func NewTTLStoreWithClock(now func() time.Time) *TTLStore {
	return &TTLStore{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Set stores value under key for the given lifetime, replacing any previous
// value and its remaining TTL.
func (s *TTLStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get returns the live value for key. Absent and expired keys are both
// reported as not found.
func (s *TTLStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Delete removes the key and reports whether a live value was removed.
func (s *TTLStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	delete(s.entries, key)

	if !s.now().Before(e.expiresAt) {
		return false, nil
	}
	return true, nil
}
