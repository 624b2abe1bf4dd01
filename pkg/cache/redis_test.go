package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrymomot/anvil/pkg/cache"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisBackend(t *testing.T, opts ...cache.RedisOption) (*cache.RedisBackend, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return cache.NewRedis(client, opts...), mr
}

func TestRedisBackendRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), time.Minute))

		val, err := backend.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, []byte("value"), val)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t)

		_, err := backend.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("keys land under the prefix", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t, cache.WithPrefix("api"))

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), time.Minute))

		require.True(t, mr.Exists("api:key"))
		require.False(t, mr.Exists("key"))
	})
}

func TestRedisBackendTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("expired key reads as a miss", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), 50*time.Millisecond))
		mr.FastForward(100 * time.Millisecond)

		_, err := backend.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("zero ttl takes the configured default", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t, cache.WithRedisDefaultTTL(time.Minute))

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), 0))

		require.Equal(t, time.Minute, mr.TTL("key"))
	})

	t.Run("negative ttl stores without expiration", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t, cache.WithRedisDefaultTTL(time.Minute))

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), -1))

		require.Zero(t, mr.TTL("key"))
	})
}

func TestRedisBackendDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes prefixed keys", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t, cache.WithPrefix("api"))

		require.NoError(t, backend.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, backend.Set(ctx, "b", []byte("2"), time.Minute))

		require.NoError(t, backend.Delete(ctx, "a", "b"))

		for _, key := range []string{"a", "b"} {
			_, err := backend.Get(ctx, key)
			require.ErrorIs(t, err, cache.ErrNotFound)
		}
	})

	t.Run("missing keys and empty calls are no-ops", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t)

		require.NoError(t, backend.Delete(ctx, "missing"))
		require.NoError(t, backend.Delete(ctx))
	})
}

func TestRedisBackendExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("shortens a long lifetime", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), time.Hour))
		require.NoError(t, backend.Expire(ctx, "key", 50*time.Millisecond))
		mr.FastForward(100 * time.Millisecond)

		_, err := backend.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("non-positive ttl pins the key", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), time.Minute))
		require.NoError(t, backend.Expire(ctx, "key", -1))
		mr.FastForward(time.Hour)

		val, err := backend.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, []byte("value"), val)
	})

	t.Run("pinning an already pinned key", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "key", []byte("value"), -1))
		require.NoError(t, backend.Expire(ctx, "key", 0))
	})

	t.Run("missing key in both branches", func(t *testing.T) {
		t.Parallel()
		backend, _ := newRedisBackend(t)

		require.ErrorIs(t, backend.Expire(ctx, "missing", time.Minute), cache.ErrNotFound)
		require.ErrorIs(t, backend.Expire(ctx, "missing", -1), cache.ErrNotFound)
	})
}

func TestRedisBackendClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("with prefix leaves foreign keys alone", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t, cache.WithPrefix("api"))

		require.NoError(t, backend.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, backend.Set(ctx, "b", []byte("2"), time.Minute))
		require.NoError(t, mr.Set("other:key", "untouched"))

		require.NoError(t, backend.Clear(ctx))

		require.False(t, mr.Exists("api:a"))
		require.False(t, mr.Exists("api:b"))
		require.True(t, mr.Exists("other:key"))
	})

	t.Run("without prefix flushes the database", func(t *testing.T) {
		t.Parallel()
		backend, mr := newRedisBackend(t)

		require.NoError(t, backend.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, mr.Set("b", "2"))

		require.NoError(t, backend.Clear(ctx))

		require.False(t, mr.Exists("a"))
		require.False(t, mr.Exists("b"))
	})
}

func TestRedisBackendWithFacade(t *testing.T) {
	t.Parallel()

	backend, _ := newRedisBackend(t, cache.WithPrefix("api"))
	c := cache.New(backend, cache.DefaultKeyMaker("svc"))

	ctx := context.Background()
	var calls int

	fn := func(_ context.Context) (map[string]int, time.Duration, error) {
		calls++
		return map[string]int{"a": 1}, time.Minute, nil
	}

	first, err := cache.DoWith(ctx, c, "stats", fn, "2024-01")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1}, first)

	second, err := cache.DoWith(ctx, c, "stats", fn, "2024-01")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}
