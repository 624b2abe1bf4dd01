package db

import (
	"context"
	"errors"

	"github.com/dmitrymomot/anvil/pkg/id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// sessionKey is the context key for the ambient session.
type sessionKey struct{}

// conn is the slice of pool behavior a session routes statements
// through. *pgxpool.Pool satisfies it; session tests substitute fakes.
type conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session is a request-scoped database handle. It routes work to the
// writer or reader pool and tracks the transaction in progress, if any.
//
// A session is bound to a single request or unit of work and is not safe
// for concurrent use. Code running on the same context shares the same
// session without passing it around explicitly.
//
// Sessions are cheap to open: no connection is taken from a pool until
// the first query or transaction.
type Session struct {
	writer       conn
	reader       conn
	tx           pgx.Tx
	id           string
	depth        int
	rollbackOnly bool
	closed       bool
}

// ID returns the session's unique identifier, a ULID so correlated log
// lines sort by session creation time.
func (s *Session) ID() string {
	return s.id
}

// InTransaction returns true while a transaction is in progress.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Open creates a session and binds it into the returned context.
// Fails with ErrSessionAlreadyOpen if the context already carries an
// open session; the session middleware owns the request session and
// nested opens indicate a wiring mistake.
func (m *Manager) Open(ctx context.Context) (context.Context, *Session, error) {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil && !s.closed {
		return ctx, nil, ErrSessionAlreadyOpen
	}
	s := &Session{writer: m.writer, reader: m.reader, id: id.NewULID()}
	return context.WithValue(ctx, sessionKey{}, s), s, nil
}

// Current returns the session bound to the context.
// Returns ErrNoSession if no session was opened, ErrSessionClosed if
// the session was already closed.
func Current(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s, nil
}

// Close finishes the session bound to the context.
// See Session.Close for the commit semantics.
func Close(ctx context.Context, commit bool) error {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s == nil {
		return ErrNoSession
	}
	return s.Close(ctx, commit)
}

// Close finishes the session. A transaction still in progress is
// committed when commit is true and the session is not marked
// rollback-only, rolled back otherwise. Closing a session with no
// transactional work is a no-op apart from marking it closed.
//
// Cleanup runs detached from request cancellation: a session is closed
// on the failure path too, where the request context may already be
// canceled.
//
// Closing an already closed session is a no-op.
func (s *Session) Close(ctx context.Context, commit bool) error {
	if s.closed {
		return nil
	}
	s.closed = true

	tx := s.tx
	if tx == nil {
		return nil
	}
	s.tx = nil
	s.depth = 0

	ctx = context.WithoutCancel(ctx)
	if !commit || s.rollbackOnly {
		if err := tx.Rollback(ctx); err != nil {
			return errors.Join(ErrRollbackTransaction, err)
		}
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrCommitTransaction, err)
	}
	return nil
}

// Exec executes a statement. Routes through the transaction in progress,
// or the writer pool when none is open.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.closed {
		return pgconn.CommandTag{}, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx.Exec(ctx, sql, args...)
	}
	return s.writer.Exec(ctx, sql, args...)
}

// Query executes a query. Routes through the transaction in progress,
// or the reader pool when none is open.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx.Query(ctx, sql, args...)
	}
	return s.reader.Query(ctx, sql, args...)
}

// QueryRow executes a query expected to return at most one row.
// Routes through the transaction in progress, or the reader pool when
// none is open.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.closed {
		return errRow{ErrSessionClosed}
	}
	if s.tx != nil {
		return s.tx.QueryRow(ctx, sql, args...)
	}
	return s.reader.QueryRow(ctx, sql, args...)
}

// errRow satisfies pgx.Row for paths that fail before reaching a pool.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}
