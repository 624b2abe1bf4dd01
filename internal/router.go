package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
// It provides HTTP method routing and grouping capabilities.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group.
	// All routes defined inside fn share no common pattern prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	// Middleware applies to routes registered after the call.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given pattern.
	// Mounted handlers bypass the middleware chain entirely.
	Mount(pattern string, h http.Handler)
}

// routerAdapter wraps chi.Router to implement the Router interface.
//
// Unlike adapting each middleware to chi separately, the adapter composes
// global, group, and route middleware with the handler into a single
// HandlerFunc chain per route. A single chain shares one Context across
// all layers and lets errors from inner layers propagate to outer
// middleware, which the database session and error logging middleware
// rely on.
type routerAdapter struct {
	router      chi.Router
	app         *App
	middlewares []Middleware
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Get(path, r.wrap(h, mw...))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Post(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Put(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Patch(path, r.wrap(h, mw...))
}

func (r *routerAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Delete(path, r.wrap(h, mw...))
}

func (r *routerAdapter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Head(path, r.wrap(h, mw...))
}

func (r *routerAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Options(path, r.wrap(h, mw...))
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, middlewares: slices.Clone(r.middlewares)})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, middlewares: slices.Clone(r.middlewares)})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

// wrap composes the full middleware chain for a route and adapts it to
// an http.HandlerFunc. Execution order: app middleware first, then group
// middleware, then route middleware, then the handler. The chain is
// built in reverse so the first registered middleware wraps outermost.
func (r *routerAdapter) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	chain := make([]Middleware, 0, len(r.app.middlewares)+len(r.middlewares)+len(mw))
	chain = append(chain, r.app.middlewares...)
	chain = append(chain, r.middlewares...)
	chain = append(chain, mw...)
	slices.Reverse(chain)
	for _, m := range chain {
		h = m(h)
	}
	return r.app.adaptHandler(h)
}

// adaptHandler converts a HandlerFunc to http.HandlerFunc.
// Errors escaping the chain fall through to the app's error handler.
func (a *App) adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c := newContext(w, req, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}
