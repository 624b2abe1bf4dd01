package cache

import (
	"context"
	"time"
)

// Backend is a byte-oriented key-value store with TTL support.
// Implementations must be safe for concurrent use.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the backend's configured default TTL
//   - Negative: item never expires
type Backend interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Expire resets the remaining lifetime of an existing key.
	// A non-positive ttl removes the expiration. Returns ErrNotFound
	// if the key does not exist.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
