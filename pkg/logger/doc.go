// Package logger builds structured slog loggers with context-driven
// attribute injection and optional Sentry forwarding.
//
// The decorator runs every ContextExtractor on each log call, so values
// carried in the request context (request id, authenticated subject, session
// id) show up on log lines automatically:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request completed", slog.Int("status", 200))
//
// For production deployments with error tracking:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         cfg.Sentry.DSN,
//		Environment: cfg.Env,
//	}, middlewares.RequestIDExtractor())
//
// An empty DSN falls back to stdout-only output, so the same construction
// works in development and tests. Components that accept a *slog.Logger
// default to NewNope when none is supplied.
package logger
