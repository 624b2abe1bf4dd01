// Package redis opens [github.com/redis/go-redis/v9] clients with
// production pool defaults, startup retries, and hooks for the
// application lifecycle.
//
// # Connecting
//
// [Open] accepts a redis:// or rediss:// URL, applies pool tuning from
// functional options, and pings the server before handing the client
// back. Failed pings are retried with a growing wait between attempts.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"),
//	    redis.WithPoolSize(20),
//	    redis.WithRetry(5, 3*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// [MustOpen] is the same but exits the process when the connection
// cannot be established, for services that cannot run without Redis.
//
// Every tunable has a default aimed at a small production deployment;
// see the With* options for the values.
//
// # Lifecycle integration
//
// [Healthcheck] and [Shutdown] produce closures in the shapes the
// application runner expects:
//
//	app.Run(cfg.Addr(),
//	    anvil.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    anvil.ShutdownHook(redis.Shutdown(client)),
//	)
//
// # Errors
//
// Failures surface as sentinel errors joined with the underlying cause:
// [ErrEmptyConnectionURL], [ErrFailedToParseURL] for bad input,
// [ErrConnectionFailed] once retries are exhausted, and
// [ErrHealthcheckFailed] from the readiness closure. Match them with
// [errors.Is].
package redis
