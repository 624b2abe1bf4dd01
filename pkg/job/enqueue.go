package job

import (
	"time"

	"github.com/riverqueue/river"
)

// enqueueConfig collects per-job enqueue options.
type enqueueConfig struct {
	scheduledAt *time.Time
	queue       string
	uniqueKey   string
	tags        []string
	maxAttempts int
	uniqueFor   time.Duration
	priority    int
}

// insertOpts converts the collected options into River insert options.
// The unique key travels in the job args instead, so it participates in
// River's argument-based dedup hash.
func (c *enqueueConfig) insertOpts() *river.InsertOpts {
	opts := &river.InsertOpts{}
	if c.queue != "" {
		opts.Queue = c.queue
	}
	if c.scheduledAt != nil {
		opts.ScheduledAt = *c.scheduledAt
	}
	if c.maxAttempts > 0 {
		opts.MaxAttempts = c.maxAttempts
	}
	if c.priority > 0 {
		opts.Priority = c.priority
	}
	if len(c.tags) > 0 {
		opts.Tags = c.tags
	}
	if c.uniqueFor > 0 {
		opts.UniqueOpts = river.UniqueOpts{ByPeriod: c.uniqueFor}
	}
	return opts
}

// EnqueueOption configures a single enqueued job.
type EnqueueOption func(*enqueueConfig)

// InQueue routes the job to a named queue instead of the default one.
func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) {
		if name != "" {
			c.queue = name
		}
	}
}

// ScheduledAt delays the job until a specific time.
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) {
		c.scheduledAt = &t
	}
}

// ScheduledIn delays the job by a duration from now.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		t := time.Now().Add(d)
		c.scheduledAt = &t
	}
}

// MaxAttempts caps retries for the job. Without it River's default
// applies (25 attempts).
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// UniqueFor suppresses duplicate jobs for the given period. Jobs count
// as duplicates when their task name and unique key match. Combine with
// UniqueKey to scope dedup to an entity:
//
//	jobs.Enqueue(ctx, "send_password_reset", payload,
//	    job.UniqueFor(time.Hour),
//	    job.UniqueKey(userID))
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueFor = d
	}
}

// UniqueKey sets the dedup key used by UniqueFor. Without it River
// hashes the full job arguments.
func UniqueKey(key string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueKey = key
	}
}

// Priority orders jobs within a queue. Lower runs first; River treats
// unset as priority 1.
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) {
		c.priority = p
	}
}

// Tags attaches metadata tags for filtering and monitoring.
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}
