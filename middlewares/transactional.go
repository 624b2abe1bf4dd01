package middlewares

import (
	"context"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/db"
)

// Transactional returns middleware that runs the whole handler inside a
// transaction with the given propagation. It is the declarative form of
// db.RunInTransaction for routes where every statement belongs to one
// unit of work:
//
//	r.POST("/orders", h.createOrder, middlewares.Transactional(db.PropagationRequired))
//
// Requires DBSession earlier in the chain; without a session the request
// fails with db.ErrNoSession.
func Transactional(propagation db.Propagation) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			// REQUIRES_NEW rebinds the ambient session inside the boundary.
			// Restore the request context afterwards so later stages see the
			// request session, not the already settled inner one.
			prev := c.Context()
			defer c.SetContext(prev)

			return db.RunInTransaction(prev, propagation, func(ctx context.Context) error {
				c.SetContext(ctx)
				return next(c)
			})
		}
	}
}
