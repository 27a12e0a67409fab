package challenge

import (
	"context"
	"time"
)

// Store is the ephemeral TTL-capable key-value backend holding all transient
// challenge state. Implementations must make Incr atomic: two concurrent
// increments of the same key may never observe the same value, and an
// increment must not reset the remaining TTL of an existing key.
type Store interface {
	// Get returns the value stored at key, or ErrKeyNotFound if the key is
	// absent or its TTL has elapsed.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value with the given TTL, replacing any previous value.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the integer at key and returns the new
	// value. A missing key is created at 1 with the given TTL; an existing
	// key keeps its remaining TTL.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Delete removes the given keys and reports how many existed. The count
	// is the compare-and-swap primitive for single-use consumption: of two
	// racing deleters, exactly one observes a non-zero count.
	Delete(ctx context.Context, keys ...string) (int64, error)
}
