package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// settings collects pool and retry tuning for Open.
type settings struct {
	poolSize      int
	minIdleConns  int
	maxIdleTime   time.Duration
	maxActiveTime time.Duration
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration
}

func newSettings() *settings {
	return &settings{
		poolSize:      10,
		minIdleConns:  5,
		maxIdleTime:   10 * time.Minute,
		maxActiveTime: 30 * time.Minute,
		retryAttempts: 3,
		retryInterval: 5 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
}

// apply copies the tuning onto parsed client options.
func (s *settings) apply(opts *redis.Options) {
	opts.PoolSize = s.poolSize
	opts.MinIdleConns = s.minIdleConns
	opts.ConnMaxIdleTime = s.maxIdleTime
	opts.ConnMaxLifetime = s.maxActiveTime
	opts.ReadTimeout = s.readTimeout
	opts.WriteTimeout = s.writeTimeout
	opts.DialTimeout = s.dialTimeout
}

// Option adjusts connection settings.
type Option func(*settings)

// WithPoolSize caps the connection pool. Default 10.
func WithPoolSize(n int) Option {
	return func(s *settings) {
		s.poolSize = n
	}
}

// WithMinIdleConns keeps at least n idle connections open. Default 5.
func WithMinIdleConns(n int) Option {
	return func(s *settings) {
		s.minIdleConns = n
	}
}

// WithMaxIdleTime closes connections idle longer than d. Default 10m.
func WithMaxIdleTime(d time.Duration) Option {
	return func(s *settings) {
		s.maxIdleTime = d
	}
}

// WithMaxActiveTime caps total connection lifetime. Default 30m.
func WithMaxActiveTime(d time.Duration) Option {
	return func(s *settings) {
		s.maxActiveTime = d
	}
}

// WithRetry sets connection attempts and the base wait between them.
// The wait grows with each attempt. Default 3 attempts, 5s base.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(s *settings) {
		s.retryAttempts = attempts
		s.retryInterval = interval
	}
}

// WithReadTimeout bounds read operations. Default 3s.
func WithReadTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.readTimeout = d
	}
}

// WithWriteTimeout bounds write operations. Default 3s.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.writeTimeout = d
	}
}

// WithDialTimeout bounds new connection establishment. Default 5s.
func WithDialTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.dialTimeout = d
	}
}

// Open connects to Redis at the given redis:// or rediss:// URL and
// verifies the connection with a ping before returning.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//	    redis.WithPoolSize(20),
//	    redis.WithRetry(5, 3*time.Second),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	s := newSettings()
	for _, opt := range opts {
		opt(s)
	}

	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	s.apply(parsed)

	return dial(ctx, parsed, s.retryAttempts, s.retryInterval)
}

// MustOpen is Open that exits the process on failure. For applications
// where startup without Redis is pointless.
func MustOpen(ctx context.Context, url string, opts ...Option) redis.UniversalClient {
	client, err := Open(ctx, url, opts...)
	if err != nil {
		slog.Error("failed to open redis connection", "error", err)
		os.Exit(1)
	}
	return client
}

// dial connects with a linearly growing wait between attempts.
func dial(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}

	return nil, ErrConnectionFailed
}
