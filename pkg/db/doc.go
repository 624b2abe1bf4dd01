// Package db provides PostgreSQL access with request-scoped sessions and
// transaction propagation.
//
// This package wraps [github.com/jackc/pgx/v5/pgxpool] with a writer/reader
// pool pair, an ambient session carried in context.Context, and nested
// transaction semantics modeled on declarative transaction management.
//
// # Features
//
//   - Writer/reader pool split with automatic fallback to a single pool
//   - Request-scoped sessions bound to context, opened lazily
//   - Transaction propagation: REQUIRED joins, REQUIRES_NEW isolates
//   - Standalone sessions for background jobs and scheduled tasks
//   - Automatic retry logic with exponential backoff during startup
//   - Health check functions compatible with standard health check interfaces
//   - Database migrations using [github.com/pressly/goose/v3]
//
// # Configuration
//
// Canonical environment variables:
//
//	WRITER_DB_URL               - Primary PostgreSQL URL (required)
//	READER_DB_URL               - Read replica URL (optional)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 5)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Sessions
//
// A [Manager] owns the pools and opens sessions. The session middleware
// calls [Manager.Open] before the handler and [Close] after it, so
// handler code only ever asks for the current session:
//
//	s, err := db.Current(ctx)
//	if err != nil {
//	    return err
//	}
//	row := s.QueryRow(ctx, "SELECT name FROM users WHERE id = $1", id)
//
// Outside a transaction, reads route to the reader pool and writes to
// the writer pool. Inside a transaction everything runs on the
// transaction's connection.
//
// # Transactions
//
// [RunInTransaction] is the transaction boundary. Boundaries nest:
//
//	err := db.RunInTransaction(ctx, db.PropagationRequired, func(ctx context.Context) error {
//	    if err := debit(ctx, from, amount); err != nil {
//	        return err
//	    }
//	    // Joins the same transaction.
//	    return db.RunInTransaction(ctx, db.PropagationRequired, func(ctx context.Context) error {
//	        return credit(ctx, to, amount)
//	    })
//	})
//
// Only the outermost boundary commits. An error from any nested boundary
// marks the transaction rollback-only and propagates unchanged.
//
// Use [PropagationRequiresNew] for work that must persist independently
// of the caller's outcome, such as audit records:
//
//	_ = db.RunInTransaction(ctx, db.PropagationRequiresNew, func(ctx context.Context) error {
//	    return writeAuditRecord(ctx, event)
//	})
//
// # Background Work
//
// Code running outside a request uses [Manager.WithStandaloneSession],
// which runs the function inside a single transaction on a fresh
// session, committed on success and rolled back on failure:
//
//	err := manager.WithStandaloneSession(ctx, cleanupExpired)
//
// # Migrations
//
// Run database migrations using embedded SQL files:
//
//	//go:embed migrations/*.sql
//	var migrationsFS embed.FS
//
//	migrations, _ := fs.Sub(migrationsFS, "migrations")
//	err := db.Migrate(ctx, manager.Writer(), migrations, "schema_migrations", logger)
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrNoSession] - Context carries no session
//   - [ErrSessionAlreadyOpen] - Open called on a context with a live session
//   - [ErrSessionClosed] - Session used after Close
//   - [ErrMarkedRollback] - Commit attempted on a rollback-only transaction
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
