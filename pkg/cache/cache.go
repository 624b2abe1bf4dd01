package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/anvil/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through facade over a Backend: it derives keys from
// operation names and arguments, serializes values as JSON, and fills
// misses from a compute callback.
//
// Cache failures never fail the request. Backend read errors are treated
// as misses and the value is computed directly; write errors are logged
// and dropped. Only the compute callback's own error reaches the caller.
type Cache struct {
	backend Backend
	keys    KeyMaker
	ttl     time.Duration
	log     *slog.Logger
	sf      singleflight.Group
}

// Option configures a Cache facade.
type Option func(*Cache)

// WithTTL sets the facade-level TTL applied when a compute callback
// reports a zero TTL. When unset, zero TTLs fall through to the
// backend's own default.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithLogger sets the logger for dropped cache errors.
// Default: a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		c.log = log
	}
}

// New creates a cache facade over the given backend.
// A nil keys falls back to DefaultKeyMaker with no namespace.
func New(backend Backend, keys KeyMaker, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		keys:    keys,
		log:     logger.NewNope(),
	}
	if c.keys == nil {
		c.keys = DefaultKeyMaker("")
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate removes the cached result of one operation call.
// The op and args must match the Do call that produced the entry.
func (c *Cache) Invalidate(ctx context.Context, op string, args ...any) error {
	key, err := c.keys.Key(op, args...)
	if err != nil {
		return err
	}
	return c.backend.Delete(ctx, key)
}

// DoWith retrieves the cached result of an operation call from c, or
// computes it via fn on a miss. Concurrent misses for the same key are
// collapsed with singleflight, so fn runs once per key at a time.
//
// The callback returns the value, a TTL for caching, and an error.
// TTL semantics follow Backend.Set; a zero TTL is first resolved against
// the facade's WithTTL. If fn returns an error, nothing is cached and
// the error is returned unchanged.
//
// A nil c computes directly without caching.
func DoWith[V any](ctx context.Context, c *Cache, op string, fn func(ctx context.Context) (V, time.Duration, error), args ...any) (V, error) {
	if c == nil {
		v, _, err := fn(ctx)
		return v, err
	}

	key, err := c.keys.Key(op, args...)
	if err != nil {
		c.log.WarnContext(ctx, "cache key unavailable, computing directly", "op", op, "error", err)
		v, _, err := fn(ctx)
		return v, err
	}

	// Fast path: try the backend first.
	data, err := c.backend.Get(ctx, key)
	switch {
	case err == nil:
		var v V
		uerr := json.Unmarshal(data, &v)
		if uerr == nil {
			return v, nil
		}
		c.log.WarnContext(ctx, "cache entry undecodable, recomputing", "op", op, "key", key, "error", errors.Join(ErrUnmarshal, uerr))
	case !errors.Is(err, ErrNotFound):
		c.log.WarnContext(ctx, "cache read failed, computing directly", "op", op, "key", key, "error", err)
	}

	// Slow path: collapse concurrent misses and store the fresh value.
	v, err, _ := c.sf.Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		if ttl == 0 {
			ttl = c.ttl
		}

		data, merr := json.Marshal(val)
		if merr != nil {
			c.log.WarnContext(ctx, "cache entry not stored", "op", op, "key", key, "error", errors.Join(ErrMarshal, merr))
			return val, nil
		}
		if serr := c.backend.Set(ctx, key, data, ttl); serr != nil {
			c.log.WarnContext(ctx, "cache write failed", "op", op, "key", key, "error", serr)
		}

		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}
