package internal

// Handler declares routes on a router.
//
// Example:
//
//	type UserHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *UserHandler) Routes(r anvil.Router) {
//	    r.GET("/users", h.listUsers)
//	    r.POST("/users", h.createUser)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handling middleware.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response. Because middleware composes into a single
// HandlerFunc chain, an error returned by an inner layer (or the handler)
// travels back through every outer layer before it reaches the error
// handler.
//
// Example:
//
//	func RequireKey(next anvil.HandlerFunc) anvil.HandlerFunc {
//	    return func(c anvil.Context) error {
//	        if c.Header("X-Api-Key") == "" {
//	            return internal.ErrUnauthorized("missing api key")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
