// Package middlewares provides the HTTP middleware for anvil applications:
// the request lifecycle pieces (database session, authentication,
// authorization, transactions) plus the usual ambient set (request ID,
// panic recovery, CORS, timeouts, localization).
//
// # Database Session
//
// DBSession opens a request-scoped database session before the handler
// and closes it exactly once after: commit on success, rollback on error
// or panic. The session rides on the request context, so handlers and
// everything they call share it through db.Current without plumbing.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.DBSession(dbManager),
//	    ),
//	)
//
// Transactional wraps a whole handler in db.RunInTransaction for routes
// where every statement belongs to one unit of work:
//
//	r.POST("/transfer", h.transfer, middlewares.Transactional(db.PropagationRequired))
//
// # Authentication
//
// Authenticate resolves the caller's identity from a bearer token. No
// token means the request continues as anonymous; a bad token is
// rejected with 401 before the handler runs:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.Authenticate(authenticator),
//	    ),
//	)
//
// Authorize guards individual routes with predicates, checked in order
// until one allows:
//
//	r.GET("/posts", h.listPosts, middlewares.Authorize(guard.AllowAll))
//	r.POST("/posts", h.createPost, middlewares.Authorize(guard.IsAuthenticated))
//	r.DELETE("/users/{id}", h.deleteUser, middlewares.Authorize(guard.IsAdmin))
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates new UUIDs.
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := anvil.New(
//	    anvil.WithLogger("api", middlewares.RequestIDExtractor()),
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics and converts them to typed errors. The default
// error handler renders a PanicError as a 500 with the structured body;
// a custom handler can branch on it:
//
//	anvil.WithErrorHandler(func(c anvil.Context, err error) error {
//	    if middlewares.IsPanicError(err) {
//	        return c.Error(500, "internal server error")
//	    }
//	    return err
//	})
//
// # Timeout
//
// Timeout enforces request deadlines and returns a typed TimeoutError.
// The handler goroutine continues after timeout; use GetTimeoutContext
// and ctx.Done() for early termination in long-running work.
//
//	middlewares.Timeout(5 * time.Second)
//
// # CORS
//
// CORS handles Cross-Origin Resource Sharing: preflight (OPTIONS)
// requests and response headers.
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://app.example.com"),
//	    middlewares.WithAllowCredentials(),
//	)
//
// # I18n
//
// I18n resolves the request's language (lang query parameter, then
// Accept-Language by default) and stores a Translator in the context.
// Handlers translate through c.T and c.Tn, and BindJSON localizes
// validation messages automatically:
//
//	middlewares.I18n(translations, middlewares.WithI18nNamespace("api"))
//
// # Recommended Middleware Order
//
//	anvil.WithMiddleware(
//	    middlewares.CORS(),                 // handle preflight before other processing
//	    middlewares.RequestID(),            // assign ID for all subsequent logging
//	    middlewares.Recover(),              // catch panics from everything below
//	    middlewares.Timeout(30*time.Second),
//	    middlewares.I18n(translations),     // per-request language and translator
//	    middlewares.Authenticate(authenticator), // resolve identity
//	    middlewares.DBSession(dbManager),   // session per request
//	)
//
// Authorize is per-route, not global: attach it to routes with the
// predicates they need.
package middlewares
