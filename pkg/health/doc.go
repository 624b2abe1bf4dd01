// Package health evaluates named dependency checks and serves the
// results as Kubernetes-style liveness and readiness probes.
//
// A check is any func(context.Context) error; the db, redis, and job
// packages export theirs in exactly this shape, so wiring is one map
// literal:
//
//	checks := health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	    "jobs":     job.Healthcheck(jobs),
//	}
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(checks,
//	    health.WithTimeout(3*time.Second),
//	    health.WithLogger(log),
//	))
//
// Applications built on the anvil runner get these routes through
// anvil.WithReadinessCheck instead of registering them by hand.
//
// [LivenessHandler] always answers 200: it only claims the process is
// up. [ReadinessHandler] runs every check concurrently under a shared
// deadline (5s unless WithTimeout says otherwise) and answers 503 while
// any dependency is failing. A check that is still running when the
// deadline passes is reported as [ErrCheckTimeout].
//
// Probes get plain "OK" / "Service Unavailable" bodies. Send
// Accept: application/json, or append ?format=json when poking the
// endpoint with curl, for the detailed form:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// [Run] exposes the same evaluation without HTTP, returning
// [ErrCheckFailed] on an unhealthy aggregate. Container healthchecks
// and startup gates use it directly.
package health
