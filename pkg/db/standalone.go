package db

import (
	"context"

	"github.com/dmitrymomot/anvil/pkg/id"
)

// WithStandaloneSession runs fn with a fresh session bound into its
// context. Use it for work outside the request lifecycle, such as
// background jobs and scheduled tasks, where no middleware manages a
// session.
//
// The whole of fn runs inside a single transaction: it begins before fn
// is called and commits when fn returns nil, or rolls back when fn
// returns an error or panics. Nested RunInTransaction calls with
// PropagationRequired join it. Any session already present on ctx is
// shadowed for the duration of fn and left untouched.
//
// Example:
//
//	err := manager.WithStandaloneSession(ctx, func(ctx context.Context) error {
//	    s, _ := db.Current(ctx)
//	    _, err := s.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now()")
//	    return err
//	})
func (m *Manager) WithStandaloneSession(ctx context.Context, fn func(ctx context.Context) error) error {
	return runStandalone(ctx, m.writer, m.reader, fn)
}

func runStandalone(ctx context.Context, writer, reader conn, fn func(ctx context.Context) error) error {
	s := &Session{writer: writer, reader: reader, id: id.NewULID()}
	sctx := context.WithValue(ctx, sessionKey{}, s)

	if err := s.Begin(sctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Close(sctx, false)
			panic(p)
		}
	}()

	if err := fn(sctx); err != nil {
		_ = s.Close(sctx, false)
		return err
	}
	return s.Close(sctx, true)
}
