package db

import (
	"context"
	"errors"

	"github.com/dmitrymomot/anvil/pkg/id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Propagation selects how RunInTransaction relates to a transaction
// already in progress on the session.
type Propagation int

const (
	// PropagationRequired joins the transaction in progress, or begins
	// one when the session has none. Only the outermost boundary
	// physically commits or rolls back.
	PropagationRequired Propagation = iota

	// PropagationRequiresNew suspends the session's transaction and runs
	// fn in an independent transaction on its own pooled connection.
	// The inner transaction commits or rolls back immediately when fn
	// returns, regardless of the outer outcome.
	PropagationRequiresNew
)

// String returns the propagation name.
func (p Propagation) String() string {
	switch p {
	case PropagationRequired:
		return "REQUIRED"
	case PropagationRequiresNew:
		return "REQUIRES_NEW"
	default:
		return "UNKNOWN"
	}
}

// RunInTransaction executes fn within a transaction on the session bound
// to ctx, honoring the propagation policy.
//
// With PropagationRequired, nested calls join the outer transaction:
// their work commits or rolls back together with it. An error from a
// nested fn marks the whole transaction rollback-only and is returned
// unchanged to the caller. If the outermost boundary then tries to
// commit anyway, the transaction rolls back and ErrMarkedRollback is
// returned.
//
// With PropagationRequiresNew, fn runs in its own transaction that
// finishes before control returns, leaving the outer transaction
// untouched. Inside fn, the context is rebound so the ambient session
// observed by nested calls is the new one.
//
// A panic in fn rolls back the transaction and re-panics.
func RunInTransaction(ctx context.Context, propagation Propagation, fn func(ctx context.Context) error) error {
	s, err := Current(ctx)
	if err != nil {
		return err
	}

	switch propagation {
	case PropagationRequired:
		return s.runRequired(ctx, fn)
	case PropagationRequiresNew:
		return s.runRequiresNew(ctx, fn)
	default:
		return ErrUnknownPropagation
	}
}

// runRequired joins the transaction in progress or begins the outermost one.
func (s *Session) runRequired(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx != nil {
		s.depth++
		defer func() { s.depth-- }()

		if err := fn(ctx); err != nil {
			s.rollbackOnly = true
			return err
		}
		return nil
	}

	tx, err := s.writer.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTransaction, err)
	}
	s.tx = tx
	s.depth = 1

	// finish resets the session's transaction state and settles the
	// physical transaction. Runs detached from request cancellation so
	// the rollback of a canceled request still reaches the database.
	finish := func(commit bool) error {
		cleanupCtx := context.WithoutCancel(ctx)
		rollbackOnly := s.rollbackOnly
		s.tx = nil
		s.depth = 0
		s.rollbackOnly = false

		if !commit {
			_ = tx.Rollback(cleanupCtx)
			return nil
		}
		if rollbackOnly {
			_ = tx.Rollback(cleanupCtx)
			return ErrMarkedRollback
		}
		if err := tx.Commit(cleanupCtx); err != nil {
			return errors.Join(ErrCommitTransaction, err)
		}
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			_ = finish(false)
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		_ = finish(false)
		return err
	}
	return finish(true)
}

// runRequiresNew runs fn in an independent transaction on a fresh
// session, leaving this session's transaction suspended and untouched.
func (s *Session) runRequiresNew(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.writer.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTransaction, err)
	}

	inner := &Session{writer: s.writer, reader: s.reader, id: id.NewULID(), tx: tx, depth: 1}
	innerCtx := context.WithValue(ctx, sessionKey{}, inner)

	settle := func(commit bool) error {
		cleanupCtx := context.WithoutCancel(ctx)
		inner.tx = nil
		inner.depth = 0
		inner.closed = true

		if !commit || inner.rollbackOnly {
			_ = tx.Rollback(cleanupCtx)
			if commit && inner.rollbackOnly {
				return ErrMarkedRollback
			}
			return nil
		}
		if err := tx.Commit(cleanupCtx); err != nil {
			return errors.Join(ErrCommitTransaction, err)
		}
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			_ = settle(false)
			panic(p)
		}
	}()

	if err := fn(innerCtx); err != nil {
		_ = settle(false)
		return err
	}
	return settle(true)
}

// Begin starts a transaction boundary on the session. When a transaction
// is already in progress the boundary nests: Begin increments the depth
// and the matching Commit or Rollback settles only that level. The
// physical transaction begins at the outermost boundary.
//
// Most code should prefer RunInTransaction, which pairs the boundary
// calls and handles panics. Begin exists for code whose begin and settle
// points do not fit a closure.
func (s *Session) Begin(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx != nil {
		s.depth++
		return nil
	}

	tx, err := s.writer.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTransaction, err)
	}
	s.tx = tx
	s.depth = 1
	return nil
}

// Commit settles the current transaction boundary. Nested boundaries only
// decrement the depth; the physical commit happens when the outermost
// boundary commits. A transaction marked rollback-only rolls back instead
// and Commit returns ErrMarkedRollback.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}
	if s.depth > 1 {
		s.depth--
		return nil
	}

	cleanupCtx := context.WithoutCancel(ctx)
	tx := s.tx
	rollbackOnly := s.rollbackOnly
	s.tx = nil
	s.depth = 0
	s.rollbackOnly = false

	if rollbackOnly {
		_ = tx.Rollback(cleanupCtx)
		return ErrMarkedRollback
	}
	if err := tx.Commit(cleanupCtx); err != nil {
		return errors.Join(ErrCommitTransaction, err)
	}
	return nil
}

// Rollback settles the current transaction boundary with a rollback.
// A nested boundary marks the transaction rollback-only and decrements
// the depth; the physical rollback happens at the outermost boundary.
func (s *Session) Rollback(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}
	if s.depth > 1 {
		s.rollbackOnly = true
		s.depth--
		return nil
	}

	cleanupCtx := context.WithoutCancel(ctx)
	tx := s.tx
	s.tx = nil
	s.depth = 0
	s.rollbackOnly = false

	if err := tx.Rollback(cleanupCtx); err != nil {
		return errors.Join(ErrRollbackTransaction, err)
	}
	return nil
}

// WithTx executes fn within a database transaction on the given pool.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
//
// This is the low-level helper for code that manages pools directly.
// Request handlers should use RunInTransaction, which cooperates with
// the ambient session.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
