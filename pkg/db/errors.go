package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")

	// Session lifecycle errors.
	ErrSessionAlreadyOpen = errors.New("db: session already open in context")
	ErrNoSession          = errors.New("db: no session in context")
	ErrSessionClosed      = errors.New("db: session is closed")

	// Transaction errors.
	ErrBeginTransaction    = errors.New("db: failed to begin transaction")
	ErrCommitTransaction   = errors.New("db: failed to commit transaction")
	ErrRollbackTransaction = errors.New("db: failed to roll back transaction")
	ErrNoTransaction       = errors.New("db: no transaction in progress")
	ErrMarkedRollback      = errors.New("db: transaction marked rollback-only")
	ErrUnknownPropagation  = errors.New("db: unknown transaction propagation")
)
