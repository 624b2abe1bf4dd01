package cache

import "time"

// MemoryOption tunes a MemoryBackend.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
		maxEntries:      0, // unlimited
	}
}

// WithDefaultTTL sets the expiration applied when Set is called with a
// zero TTL. Default 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the background sweeper drops
// expired entries. Zero disables the sweeper, leaving expired entries
// to be dropped lazily on access. Default 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the entry count. At the cap, storing a new key
// evicts the least recently used one. Zero means unlimited, which is
// the default.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}
