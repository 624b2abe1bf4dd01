package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations from fsys against the
// pool's database, tracking applied versions in migrationTable. fsys
// must carry the .sql files at its root; for an embedded directory,
// pass fs.Sub of the embed.FS.
//
// The pool is bridged to database/sql with stdlib.OpenDBFromPool. The
// bridge shares the pool's connections and must not be closed here.
// Goose configuration is process-global; concurrent Migrate calls are
// not supported.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, migrationTable string, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLogger{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

// gooseLogger adapts slog to goose's logger interface.
type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs at error level only; goose returns the failure up the
// stack, so the process is not exited here.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
