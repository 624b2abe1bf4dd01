package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/logger"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked in order for an id assigned by an
// upstream proxy or gateway.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders replaces the inbound headers consulted for an
// existing id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator replaces the id generator. The default is a
// random UUID per request.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Generator = gen
	}
}

// WithRequestIDResponseHeader renames the response header the id is
// echoed on.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID returns middleware that tags every request with an id,
// reusing one from the configured inbound headers when present so
// traces stay continuous across services. The id lands in the request
// context and on the response header before the handler runs.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := inboundRequestID(c, cfg.Headers)
			if id == "" {
				id = cfg.Generator()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.ResponseHeader, id)

			return next(c)
		}
	}
}

func inboundRequestID(c internal.Context, headers []string) string {
	for _, header := range headers {
		if v := c.Header(header); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID returns the id assigned by the RequestID middleware, or
// "" when the middleware did not run.
func GetRequestID(c internal.Context) string {
	if v, ok := c.Get(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds the request id to log records as
// "request_id". Wire it through anvil.WithLogger so every log line
// written during a request carries the id.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
