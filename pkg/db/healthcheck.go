package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Healthcheck returns a health check function for a single pool.
// Compatible with health.CheckFunc.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithHealthChecks(
//	        anvil.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
func Healthcheck(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
