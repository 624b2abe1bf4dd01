// Package cache provides a read-through cache facade with in-memory and
// Redis backends.
//
// The package has three layers:
//
//   - [Backend] — a byte-oriented store with TTL support
//   - [KeyMaker] — deterministic keys from operation names and arguments
//   - [Cache] — the facade gluing them together with JSON serialization,
//     singleflight miss collapsing, and fail-open error handling
//
// # Backends
//
// Use [NewMemory] for single-process setups and tests. It pairs a hash
// map with a doubly linked list for O(1) lookups and LRU eviction, and a
// background sweeper drops expired entries:
//
//	backend := cache.NewMemory(
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//	defer backend.Close()
//
// Use [NewRedis] for production. It needs a
// [github.com/redis/go-redis/v9.UniversalClient] from
// [github.com/dmitrymomot/anvil/pkg/redis]:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	backend := cache.NewRedis(client, cache.WithPrefix("api"))
//
// Both backends read Set's ttl argument the same way: positive expires
// the entry after that duration, zero applies the backend's default TTL
// (an hour unless configured), and negative stores without expiration.
//
// # Process-Wide Facade
//
// Applications configure one facade at startup and use the package-level
// helpers everywhere else:
//
//	if err := cache.Init(backend, cache.DefaultKeyMaker("api")); err != nil {
//	    log.Fatal(err)
//	}
//
// [Init] may be called at most once; a second call returns
// [ErrAlreadyInitialized]. Code paths that run before Init, or in
// processes that never call it, compute directly without caching.
//
// # Get or Compute
//
// [Do] keys the cache by operation name plus arguments and fills misses
// from the callback. Concurrent misses for the same key are collapsed
// with singleflight, so the callback runs once:
//
//	user, err := cache.Do(ctx, "user.byID", func(ctx context.Context) (User, time.Duration, error) {
//	    u, err := repo.FindUser(ctx, id)
//	    return u, 5 * time.Minute, err
//	}, id)
//
// The callback's TTL return value follows Backend.Set semantics. Cache
// trouble never fails the call: read errors fall back to computing the
// value, write errors are logged and dropped. Only the callback's own
// error is returned, and nothing is cached for it.
//
// [Invalidate] evicts one cached call; op and args must match the Do
// call that produced the entry:
//
//	_ = cache.Invalidate(ctx, "user.byID", id)
//
// [DoWith] and [Cache.Invalidate] are the same operations against an
// explicit facade instance, for code that cannot use the process-wide
// one (tests, multi-tenant processes).
//
// # Keys
//
// [DefaultKeyMaker] builds "{namespace}:{op}:{hash}" keys, hashing the
// JSON-encoded argument list with xxhash64. Arguments must be
// JSON-serializable. Implement [KeyMaker] (or wrap a [KeyMakerFunc])
// for custom schemes.
//
// # Error Handling
//
// The package defines sentinel errors:
//
//   - [ErrNotFound] — key does not exist or has expired
//   - [ErrClosed] — operation on a closed backend
//   - [ErrMarshal], [ErrUnmarshal] — value serialization failed
//   - [ErrAlreadyInitialized] — Init called twice
//   - [ErrKey] — key derivation failed
//
// Use [errors.Is] to check:
//
//	data, err := backend.Get(ctx, "key")
//	if errors.Is(err, cache.ErrNotFound) {
//	    // handle miss
//	}
package cache
