package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a PostgreSQL connection pool at the given URL, applying
// the pool sizing from cfg and verifying the connection with a ping.
// Failed attempts are retried with a linearly growing wait: attempt n
// waits n times RetryInterval before the next try.
func Connect(ctx context.Context, url string, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			if err := wait(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
				return nil, err
			}
			continue
		}

		// A ping surfaces auth and permission failures that pool
		// construction alone does not.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			if err := wait(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
				return nil, err
			}
			continue
		}

		return pool, nil
	}

	return nil, ErrFailedToOpenDBConnection
}

// wait sleeps for d or until ctx is canceled, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
	case <-time.After(d):
		return nil
	}
}
