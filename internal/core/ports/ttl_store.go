package ports

import (
	"context"
	"time"
)

// TTLStore is the ephemeral key-value store holding live handover codes and
// short-lived operational flags. Individual operations are atomic but never
// composed with the order-row lock: callers talk to the store first, then
// take the row lock, to keep lock hold times bounded.
type TTLStore interface {
	// Set stores a value under key for the given lifetime, replacing any
	// previous value and its remaining TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get returns the live value for key. The second return is false when
	// the key is absent or expired; the two cases are indistinguishable.
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes the key and reports whether a live value was removed.
	// The bool is what makes code consumption single-use under concurrent
	// verification: only one caller observes true.
	Delete(ctx context.Context, key string) (bool, error)
}
