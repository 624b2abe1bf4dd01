package middlewares

import (
	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/db"
)

// DBSession returns middleware that opens a database session for each
// request and binds it into the request context. Handlers and nested
// calls reach it through db.Current or c.DB() without passing it around.
//
// The session closes exactly once when the handler returns: with commit
// when the handler succeeds, with rollback when it returns an error or
// panics. The handler's error is returned unchanged; a panic is
// re-raised after the rollback. Opening is lazy, so requests that never
// touch the database do not take a connection from the pool.
//
// Install once per app. A second DBSession in the chain surfaces as
// db.ErrSessionAlreadyOpen and renders as a 500.
func DBSession(manager *db.Manager) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, session, err := manager.Open(c.Context())
			if err != nil {
				return err
			}
			c.SetContext(ctx)

			defer func() {
				if r := recover(); r != nil {
					_ = session.Close(ctx, false)
					panic(r)
				}
			}()

			if err := next(c); err != nil {
				if cerr := session.Close(ctx, false); cerr != nil {
					c.LogError("session rollback failed", "error", cerr)
				}
				return err
			}

			if err := session.Close(ctx, true); err != nil {
				c.LogError("session commit failed", "error", err)
				return internal.ErrInternal("failed to commit changes", internal.WithError(err))
			}
			return nil
		}
	}
}
