package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Implementations can be swapped (Redis, in-memory) without touching callers.
type Cache interface {
	// Get loads the value stored under key into dest.
	// found = false means a cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Incr atomically increments the integer counter at key and returns the
	// new value. A missing key starts from 0.
	Incr(ctx context.Context, key string) (int64, error)

	// GetInt reads an integer counter; a missing key reads as 0.
	GetInt(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
}
