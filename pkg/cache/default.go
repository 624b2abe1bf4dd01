package cache

import (
	"context"
	"sync"
	"time"
)

var (
	defaultMu    sync.RWMutex
	defaultCache *Cache
)

// Init configures the process-wide default facade used by Do and
// Invalidate. It must be called at most once, before handlers start;
// a second call returns ErrAlreadyInitialized and leaves the existing
// facade in place.
func Init(backend Backend, keys KeyMaker, opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultCache != nil {
		return ErrAlreadyInitialized
	}

	defaultCache = New(backend, keys, opts...)
	return nil
}

// Default returns the process-wide facade, or nil when Init has not
// been called.
func Default() *Cache {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCache
}

// Do is DoWith against the process-wide default facade.
// Before Init is called it computes directly without caching, so code
// using Do keeps working in setups that never configure a cache.
func Do[V any](ctx context.Context, op string, fn func(ctx context.Context) (V, time.Duration, error), args ...any) (V, error) {
	return DoWith(ctx, Default(), op, fn, args...)
}

// Invalidate removes a cached operation result from the process-wide
// facade. Before Init is called it is a no-op.
func Invalidate(ctx context.Context, op string, args ...any) error {
	c := Default()
	if c == nil {
		return nil
	}
	return c.Invalidate(ctx, op, args...)
}
