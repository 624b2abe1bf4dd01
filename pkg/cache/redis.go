package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is how many keys Clear asks SCAN for per round trip.
const scanBatch = 100

// RedisBackend stores cache entries in Redis, where they survive
// process restarts and are visible to every replica. This is the
// backend deployments run with.
type RedisBackend struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis wraps an established Redis client, typically one from
// pkg/redis.Open or pkg/redis.MustOpen, as a cache backend.
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	backend := cache.NewRedis(client,
//	    cache.WithPrefix("api"),
//	    cache.WithRedisDefaultTTL(30 * time.Minute),
//	)
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *RedisBackend {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisBackend{client: client, opts: o}
}

// Get returns the value stored under key, or ErrNotFound.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.qualify(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return data, nil
}

// Set stores value under key. A zero ttl falls back to the backend's
// default TTL and a negative ttl stores without expiration.
func (r *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	// Negative means "no expiration" here, which Redis spells as 0.
	return r.client.Set(ctx, r.qualify(key), value, max(ttl, 0)).Err()
}

// Delete removes the given keys. Missing keys are not an error.
func (r *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	qualified := make([]string, len(keys))
	for i, key := range keys {
		qualified[i] = r.qualify(key)
	}

	return r.client.Del(ctx, qualified...).Err()
}

// Expire resets the remaining lifetime of an existing key. A
// non-positive ttl removes the expiration. Returns ErrNotFound if the
// key does not exist.
func (r *RedisBackend) Expire(ctx context.Context, key string, ttl time.Duration) error {
	name := r.qualify(key)

	if ttl > 0 {
		ok, err := r.client.Expire(ctx, name, ttl).Result()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	}

	// PERSIST reports false both for a missing key and for a key that
	// already had no expiration, so a false needs an existence check.
	persisted, err := r.client.Persist(ctx, name).Result()
	if err != nil || persisted {
		return err
	}

	n, err := r.client.Exists(ctx, name).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry under the configured prefix via SCAN,
// which does not block the server. Without a prefix it flushes the
// whole database.
func (r *RedisBackend) Clear(ctx context.Context) error {
	if r.opts.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	match := r.opts.prefix + ":*"
	for cursor := uint64(0); ; {
		keys, next, err := r.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// qualify prepends the configured prefix, if any.
func (r *RedisBackend) qualify(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Backend = (*RedisBackend)(nil)
