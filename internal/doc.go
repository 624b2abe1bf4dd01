// Package internal provides the core types and implementation for the Anvil toolkit.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/anvil"
// instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Provides request/response access, identity, database session, and helpers
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context:
//
//	func (h *Handler) getUser(c anvil.Context) error {
//	    // Pass c directly to database calls, HTTP clients, etc.
//	    user, err := h.repo.GetUser(c, userID)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(200, user)
//	}
//
// # Middleware Chain
//
// Global, group, and route middleware compose with the handler into a single
// chain per route. All layers share one Context, and an error returned by an
// inner layer travels back through every outer layer. This is what allows the
// database session middleware to commit on success and roll back on failure
// based on the outcome of everything that ran after it:
//
//	app := internal.New(
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Authenticate(authenticator),
//	        middlewares.DBSession(manager),
//	    ),
//	)
//
// Middleware executes in the order provided.
//
// # Handler Pattern
//
// Handlers implement the Handler interface and declare routes:
//
//	type UserHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *UserHandler) Routes(r internal.Router) {
//	    r.GET("/users", h.listUsers)
//	    r.POST("/users", h.createUser, middlewares.Authorize(guard.IsAuthenticated))
//	}
//
// Handlers receive dependencies via constructor injection, not context helpers.
// This keeps handler logic explicit and testable.
//
// # Identity and Database Access
//
// Context provides shortcuts over the values bound by middleware:
//
//   - Identity(): Returns the authenticated identity, anonymous if none
//   - IsAuthenticated(): Returns true if the request carries a valid identity
//   - DB(): Returns the request-scoped database session
//   - Transactional(fn): Runs fn inside the request's transaction
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler. The default
// handler renders an HTTPError as a JSON body with error_code and message
// fields, and maps unknown errors to a 500 response:
//
//	{"error_code": "UNAUTHORIZED", "message": "token expired"}
//
// # Server Runtime
//
// Start the server with Run():
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.StartupHook(jobManager.Start),
//	    internal.ShutdownHook(db.Shutdown(pool)),
//	)
//
// The server installs signal handlers for SIGINT and SIGTERM, drains
// in-flight requests within the shutdown timeout, and then runs shutdown
// hooks in registration order.
//
// # Design Principles
//
//   - No magic: Explicit code, no reflection, no service containers
//   - Flat handlers: Business logic in handlers, extract to services only when shared
//   - Constructor injection: All dependencies visible in main.go
//   - Framework, not boilerplate: Provides utilities, not business logic
//
// See the anvil package documentation for the public API and usage examples.
package internal
