package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON logger writing to stdout at Info level.
// Extractors pull request-scoped attributes from context on every log call.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithLevel(slog.LevelInfo, extractors...)
}

// NewWithLevel creates a JSON logger writing to stdout at the given level.
// Use slog.LevelDebug when the application runs with its debug flag set.
func NewWithLevel(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}
