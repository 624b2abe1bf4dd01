package middlewares

import (
	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/guard"
)

// Authorize returns middleware that lets the request through when any of
// the given predicates allows the caller's identity. Predicates are
// checked in order and evaluation stops at the first allow.
//
// When every predicate denies, or no predicates are given, the request
// is rejected with 403 and the handler never runs. Place Authorize after
// Authenticate so the identity is resolved; without it every caller is
// anonymous.
//
//	r.GET("/posts", h.listPosts, middlewares.Authorize(guard.AllowAll))
//	r.POST("/posts", h.createPost, middlewares.Authorize(guard.IsAuthenticated))
//	r.DELETE("/posts/{id}", h.deletePost, middlewares.Authorize(guard.IsAdmin, postOwner))
func Authorize(predicates ...guard.Predicate) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !guard.Any(c.Identity(), predicates...) {
				return internal.ErrForbidden("permission denied")
			}
			return next(c)
		}
	}
}
