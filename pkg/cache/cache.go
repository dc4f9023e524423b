// Package cache defines the cache contract shared by the in-memory TTL and
// LRU backends. Callers pick a backend per concern: TTL for memoization,
// LRU for bounded result caches.
package cache

import (
	"context"
	"errors"
	"time"
)

// NoExpiration marks an entry that never expires on its own. TTL-less
// backends ignore expiration entirely.
const NoExpiration time.Duration = -1

// ErrKeyNotFound is returned by Get for absent keys. Absence is an expected
// outcome, not a failure; callers check with errors.Is.
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache is the backend-neutral cache interface.
type Cache interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (any, error)

	// Set stores value under key with the given expiration.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Delete removes the entry for key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Flush removes every entry.
	Flush(ctx context.Context) error

	// ItemCount returns the number of live entries.
	ItemCount(ctx context.Context) (int, error)
}
