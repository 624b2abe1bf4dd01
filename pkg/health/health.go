package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy means every check passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy means at least one check failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. The db, redis, and job packages all
// export healthchecks in this shape.
type CheckFunc func(ctx context.Context) error

// Checks maps probe names to their check functions.
type Checks map[string]CheckFunc

// Response aggregates one evaluation of all checks.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check reports the outcome of a single probe.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option adjusts how checks are evaluated.
type Option func(*config)

// WithTimeout caps how long one evaluation may take across all checks.
// Default 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger directs failed-check warnings to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run evaluates every check and returns the aggregate. The error is
// ErrCheckFailed when any probe failed, for callers that only need a
// yes or no.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	resp := runChecks(ctx, checks, newConfig(opts...))
	if resp.Status == StatusUnhealthy {
		return resp, ErrCheckFailed
	}
	return resp, nil
}

// runChecks probes every dependency concurrently under one deadline.
func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	type probeResult struct {
		name  string
		check Check
	}

	results := make(chan probeResult, len(checks))
	for name, probe := range checks {
		go func() {
			c := Check{Status: StatusHealthy}
			if err := probe(ctx); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					err = ErrCheckTimeout
				}
				c = Check{Status: StatusUnhealthy, Error: err.Error()}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			results <- probeResult{name: name, check: c}
		}()
	}

	resp := &Response{
		Status: StatusHealthy,
		Checks: make(map[string]Check, len(checks)),
	}
	for range len(checks) {
		r := <-results
		resp.Checks[r.name] = r.check
		if r.check.Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}
