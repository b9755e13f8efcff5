// Package kv defines the key-value store contract shared by the response
// cache and the session click store, with redis and in-memory drivers.
package kv

import (
	"context"
	"time"
)

// Store is the storage contract. All drivers must keep single-key operations
// atomic: a reader never observes a partially written value.
type Store interface {
	// Get retrieves a value. Returns ErrKeyNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetWithTTL stores a value, replacing any prior entry under the key.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// HIncrBy atomically increments a hash field and returns the new value.
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)

	// HGetAll returns all fields of a hash. Missing key yields an empty map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// Expire sets a TTL on a key. When nx is true, only keys without an
	// existing expiry are touched.
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// WaitForReady polls Ping until the store responds or timeout expires.
	WaitForReady(ctx context.Context, timeout time.Duration) error

	// Close releases resources.
	Close()
}
