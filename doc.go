// Package anvil provides a request-lifecycle toolkit for building
// JSON APIs in Go.
//
// Anvil manages the plumbing that every request passes through: a
// database session scoped to the request, transactions that propagate
// through nested calls, token authentication that resolves the caller's
// identity, and capability checks on each route. Business logic stays
// in plain Go handlers reading that state from the request context.
//
// # Quick Start
//
// Create a new application with anvil.New(), configure it with options,
// and call Run() to start the HTTP server:
//
//	app := anvil.New(
//	    anvil.WithLogger("api", middlewares.RequestIDExtractor()),
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Authenticate(authenticator),
//	        middlewares.DBSession(sessions),
//	    ),
//	    anvil.WithHandlers(
//	        handlers.NewUsers(repo),
//	    ),
//	)
//
//	if err := app.Run(":8080", anvil.Logger(log)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes. Route
// middleware guards individual endpoints:
//
//	type UsersHandler struct {
//	    repo *repository.Queries
//	}
//
//	func NewUsers(repo *repository.Queries) *UsersHandler {
//	    return &UsersHandler{repo: repo}
//	}
//
//	func (h *UsersHandler) Routes(r anvil.Router) {
//	    r.GET("/users", h.list, middlewares.Authorize(guard.IsAuthenticated))
//	    r.POST("/users", h.create, middlewares.Authorize(guard.IsAdmin))
//	}
//
//	func (h *UsersHandler) list(c anvil.Context) error {
//	    users, err := h.repo.ListUsers(c.Context())
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, users)
//	}
//
// # Database Sessions and Transactions
//
// The DBSession middleware binds a lazy database session to each
// request. Handlers group statements into transactions through the
// context; nested business functions join the ambient transaction
// without passing handles around:
//
//	func (h *UsersHandler) create(c anvil.Context) error {
//	    var req createUserRequest
//	    if err := c.BindJSON(&req); err != nil {
//	        return anvil.ErrBadRequest("invalid request body")
//	    }
//
//	    err := c.Transactional(func(ctx context.Context) error {
//	        if err := h.repo.InsertUser(ctx, req.Email); err != nil {
//	            return err
//	        }
//	        return h.audit.Record(ctx, "user.created", req.Email)
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    return c.NoContent(http.StatusCreated)
//	}
//
// # Errors
//
// Handlers return errors; the app renders them as JSON bodies with an
// error_code and message. Use the status-specific constructors to pick
// the response code:
//
//	return anvil.ErrNotFound("user not found")
//	return anvil.ErrConflict("email already registered", anvil.WithErrorCode("email_taken"))
//
// Unrecognized errors render as 500 with the detail kept server-side.
//
// # Shutdown
//
// The application handles SIGINT/SIGTERM for graceful shutdown.
// Register startup and cleanup functions as run options:
//
//	err := app.Run(cfg.Addr(),
//	    anvil.Logger(log),
//	    anvil.StartupHook(jobs.StartFunc()),
//	    anvil.ShutdownHook(jobs.Shutdown()),
//	    anvil.ShutdownHook(sessions.Shutdown()),
//	)
package anvil
