// Package job runs background work on River, a Postgres-native queue.
//
// Tasks register by structural typing: any struct with Name() and
// Handle(ctx, P) methods works, no interface import needed. The payload
// type P travels as JSON and is decoded before the handler runs. River
// supplies retries with exponential backoff, named queues, priorities,
// and dedup; this package wraps that behind a small typed API and ties
// the manager's lifecycle to the application's run hooks.
//
// # Defining tasks
//
//	type SendWelcome struct {
//	    repo *repository.Queries
//	}
//
//	func (t *SendWelcome) Name() string { return "send_welcome" }
//
//	func (t *SendWelcome) Handle(ctx context.Context, p SendWelcomePayload) error {
//	    user, err := t.repo.GetUser(ctx, p.UserID)
//	    if err != nil {
//	        return err
//	    }
//	    return t.repo.MarkWelcomed(ctx, user.ID)
//	}
//
//	type SendWelcomePayload struct {
//	    UserID string `json:"user_id"`
//	}
//
// Periodic tasks add a Schedule() method returning a five-field cron
// expression and drop the payload parameter:
//
//	func (t *CleanupSessions) Name() string     { return "cleanup_sessions" }
//	func (t *CleanupSessions) Schedule() string { return "0 * * * *" }
//	func (t *CleanupSessions) Handle(ctx context.Context) error {
//	    return t.repo.DeleteExpiredSessions(ctx)
//	}
//
// # Wiring the manager
//
//	manager, err := job.NewManager(pool,
//	    job.WithTask(tasks.NewSendWelcome(repo)),
//	    job.WithScheduledTask(tasks.NewCleanupSessions(repo)),
//	    job.WithQueue("email", 10),
//	    job.WithSessions(dbManager),
//	    job.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = app.Run(cfg.Addr(),
//	    anvil.StartupHook(manager.StartFunc()),
//	    anvil.ShutdownHook(manager.Shutdown()),
//	)
//
// With WithSessions, every task execution runs inside a single
// transaction on a standalone database session bound to its context,
// committed when the handler returns nil and rolled back otherwise.
// Task code then uses the same db helpers as request handlers:
//
//	func (t *CleanupSessions) Handle(ctx context.Context) error {
//	    s, err := db.Current(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = s.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now()")
//	    return err
//	}
//
// # Enqueueing
//
//	err := manager.Enqueue(ctx, "send_welcome", tasks.SendWelcomePayload{
//	    UserID: user.ID,
//	})
//
//	err := manager.Enqueue(ctx, "send_reminder", payload,
//	    job.ScheduledIn(24*time.Hour),
//	    job.InQueue("email"),
//	    job.MaxAttempts(3),
//	)
//
// EnqueueTx inserts the job inside a caller-owned transaction, so the
// job exists only if the surrounding changes commit:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    user, err := repo.CreateUser(ctx, tx, req)
//	    if err != nil {
//	        return err
//	    }
//	    return manager.EnqueueTx(ctx, tx, "send_welcome", tasks.SendWelcomePayload{
//	        UserID: user.ID,
//	    })
//	})
//
// UniqueFor suppresses duplicates for a period, keyed by task name plus
// UniqueKey:
//
//	manager.Enqueue(ctx, "send_password_reset", payload,
//	    job.UniqueFor(time.Hour),
//	    job.UniqueKey(userID),
//	)
//
// Processes that only dispatch work use NewEnqueuer, which carries no
// workers or queues.
//
// # Operations
//
// Healthcheck plugs into readiness probes:
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("db", dbManager.Healthcheck()),
//	    anvil.WithReadinessCheck("jobs", job.Healthcheck(manager)),
//	)
//
// River needs its tables in place before the manager starts; see
// https://riverqueue.com/docs/migrations for the migration SQL.
package job
