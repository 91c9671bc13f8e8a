// Package redis provides the Redis-backed TTL store holding live handover
// and delivery codes. Redis owns expiry; the adapter never tracks deadlines
// itself.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLStore implements ports.TTLStore on a Redis connection. All operations
// are single commands, so atomicity comes from Redis itself: DEL returning
// the removed-key count is what makes code consumption single-use.
type TTLStore struct {
	client *redis.Client
}

// NewTTLStore creates a TTL store on the given Redis client.
func NewTTLStore(client *redis.Client) *TTLStore {
	return &TTLStore{client: client}
}

// Set stores value under key for the given lifetime, replacing any previous
// value and its remaining TTL.
func (s *TTLStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Get returns the live value for key. Absent and expired keys are both
// reported as not found.
func (s *TTLStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Delete removes the key and reports whether a live value was removed.
// Under concurrent verification only one caller observes true.
func (s *TTLStore) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}
