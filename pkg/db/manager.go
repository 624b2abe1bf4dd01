package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager owns the writer and reader connection pools and creates
// request-scoped sessions. Construct one per process and share it.
type Manager struct {
	writer *pgxpool.Pool
	reader *pgxpool.Pool
}

// NewManager connects the writer pool and, when a separate reader URL is
// configured, the reader pool. With no reader URL the writer pool serves
// both roles.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	writer, err := Connect(ctx, cfg.WriterURL, cfg)
	if err != nil {
		return nil, err
	}

	reader := writer
	if cfg.ReaderURL != "" && cfg.ReaderURL != cfg.WriterURL {
		reader, err = Connect(ctx, cfg.ReaderURL, cfg)
		if err != nil {
			writer.Close()
			return nil, err
		}
	}

	return &Manager{writer: writer, reader: reader}, nil
}

// NewManagerFromPools wraps existing pools in a Manager.
// A nil reader falls back to the writer pool.
func NewManagerFromPools(writer, reader *pgxpool.Pool) *Manager {
	if reader == nil {
		reader = writer
	}
	return &Manager{writer: writer, reader: reader}
}

// Writer returns the writer connection pool.
func (m *Manager) Writer() *pgxpool.Pool {
	return m.writer
}

// Reader returns the reader connection pool.
// Returns the writer pool when no separate reader is configured.
func (m *Manager) Reader() *pgxpool.Pool {
	return m.reader
}

// Close closes both pools.
func (m *Manager) Close() {
	if m.reader != nil && m.reader != m.writer {
		m.reader.Close()
	}
	if m.writer != nil {
		m.writer.Close()
	}
}

// Healthcheck returns a health check function that pings both pools.
// Compatible with health.CheckFunc.
func (m *Manager) Healthcheck() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := m.writer.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if m.reader != m.writer {
			if err := m.reader.Ping(ctx); err != nil {
				return errors.Join(ErrHealthcheckFailed, err)
			}
		}
		return nil
	}
}

// Shutdown returns a function that gracefully closes both pools.
// Use with anvil.ShutdownHook().
//
// Example:
//
//	err := app.Run(":8080",
//	    anvil.ShutdownHook(manager.Shutdown()),
//	)
func (m *Manager) Shutdown() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		m.Close()
		return nil
	}
}
