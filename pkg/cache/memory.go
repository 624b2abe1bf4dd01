package cache

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"
)

// memEntry is one cached value on the LRU list.
type memEntry struct {
	expiresAt time.Time // zero means no expiration
	value     []byte
	key       string
}

func (e *memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryBackend caches values in process memory. Entries expire by TTL
// and, when WithMaxEntries is set, the least recently used entry makes
// room for new ones. Meant for development and tests; deployments share
// a RedisBackend instead.
//
// Lookups go through a map and recency ordering through a doubly linked
// list, so Get, Set, and eviction are all O(1).
type MemoryBackend struct {
	index  map[string]*list.Element
	lru    *list.List // front = most recently used
	opts   *memoryOptions
	stop   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-process cache backend.
//
// Example:
//
//	backend := cache.NewMemory(
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(30 * time.Second),
//	    cache.WithMaxEntries(10000),
//	)
//	defer backend.Close()
func NewMemory(opts ...MemoryOption) *MemoryBackend {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &MemoryBackend{
		index: make(map[string]*list.Element),
		lru:   list.New(),
		opts:  o,
		stop:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.sweep()
	}

	return m
}

// Get returns a copy of the value stored under key, or ErrNotFound when
// the key is absent or expired. A hit refreshes the key's recency.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.index[key]
	if !ok {
		return nil, ErrNotFound
	}

	e := elem.Value.(*memEntry)
	if e.expired(time.Now()) {
		m.unlink(elem)
		return nil, ErrNotFound
	}

	m.lru.MoveToFront(elem)
	return slices.Clone(e.value), nil
}

// deadline resolves a per-call ttl against the configured default.
// Zero means "use the default", negative means "never expire".
func (m *MemoryBackend) deadline(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

// Set stores a copy of value under key, so later mutation by the caller
// does not reach the cached entry. A zero ttl falls back to the
// backend's default TTL and a negative ttl disables expiration.
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	expiresAt := m.deadline(ttl)
	value = slices.Clone(value)

	if elem, ok := m.index[key]; ok {
		e := elem.Value.(*memEntry)
		e.value = value
		e.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	if n := m.opts.maxEntries; n > 0 && len(m.index) >= n {
		if oldest := m.lru.Back(); oldest != nil {
			m.unlink(oldest)
		}
	}

	m.index[key] = m.lru.PushFront(&memEntry{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (m *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for _, key := range keys {
		if elem, ok := m.index[key]; ok {
			m.unlink(elem)
		}
	}

	return nil
}

// Expire resets the remaining lifetime of an existing key. A
// non-positive ttl removes the expiration. Returns ErrNotFound if the
// key does not exist or has already expired.
func (m *MemoryBackend) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	elem, ok := m.index[key]
	if !ok {
		return ErrNotFound
	}

	e := elem.Value.(*memEntry)
	if e.expired(time.Now()) {
		m.unlink(elem)
		return ErrNotFound
	}

	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	} else {
		e.expiresAt = time.Time{}
	}

	return nil
}

// Clear removes all entries.
func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.index = make(map[string]*list.Element)
	m.lru.Init()

	return nil
}

// Close stops the background sweeper and rejects further writes.
// Close is idempotent.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.stop)

	return nil
}

// sweep drops expired entries on every cleanup tick until Close.
func (m *MemoryBackend) sweep() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.dropExpired()
		}
	}
}

func (m *MemoryBackend) dropExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var next *list.Element
	for elem := m.lru.Front(); elem != nil; elem = next {
		next = elem.Next()
		if elem.Value.(*memEntry).expired(now) {
			m.unlink(elem)
		}
	}
}

// unlink drops elem from both the map and the list. Callers hold mu.
func (m *MemoryBackend) unlink(elem *list.Element) {
	m.lru.Remove(elem)
	delete(m.index, elem.Value.(*memEntry).key)
}

var _ Backend = (*MemoryBackend)(nil)
