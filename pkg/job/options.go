package job

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/anvil/pkg/db"
)

// config collects manager construction options.
type config struct {
	registry   *registry
	queues     map[string]int
	logger     *slog.Logger
	sessions   *db.Manager
	schedules  []schedule
	maxWorkers int
}

func newConfig() *config {
	return &config{
		registry: newRegistry(),
		queues:   make(map[string]int),
	}
}

// schedule pairs a periodic task with its cron expression.
type schedule struct {
	handler func(context.Context) error
	name    string
	spec    string
}

// Option configures the job manager.
type Option func(*config)

// WithTask registers a task handler. The task needs Name() and
// Handle(ctx, P) methods; the payload type P is inferred from Handle.
//
//	type SendWelcome struct {
//	    repo *repository.Queries
//	}
//
//	func (t *SendWelcome) Name() string { return "send_welcome" }
//	func (t *SendWelcome) Handle(ctx context.Context, p SendWelcomePayload) error {
//	    return t.repo.MarkWelcomed(ctx, p.Email)
//	}
//
//	job.WithTask(tasks.NewSendWelcome(repo))
func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) Option {
	return func(c *config) {
		c.registry.add(task.Name(), &typedTask[P]{handle: task.Handle})
	}
}

// WithScheduledTask registers a periodic task. The task needs Name(),
// Schedule(), and Handle(ctx) methods, where Schedule() returns a
// five-field cron expression (min hour day month weekday).
//
//	func (t *CleanupSessions) Name() string     { return "cleanup_sessions" }
//	func (t *CleanupSessions) Schedule() string { return "0 * * * *" }
//	func (t *CleanupSessions) Handle(ctx context.Context) error {
//	    return t.repo.DeleteExpiredSessions(ctx)
//	}
//
//	job.WithScheduledTask(tasks.NewCleanupSessions(repo))
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, schedule{
			name:    task.Name(),
			spec:    task.Schedule(),
			handler: task.Handle,
		})
	}
}

// WithQueue adds a named queue with its own worker count. Tasks land in
// the default queue unless enqueued with InQueue.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger for job processing. Without it, logs are
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers caps concurrency on the default queue. Defaults to 100.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithSessions gives every task a standalone database session, scoped to
// that task's execution. The whole handler runs in one transaction,
// committed or rolled back with the handler's outcome. Handlers reach
// the session the same way request handlers do:
//
//	func (t *CleanupSessions) Handle(ctx context.Context) error {
//	    s, err := db.Current(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = s.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now()")
//	    return err
//	}
func WithSessions(manager *db.Manager) Option {
	return func(c *config) {
		c.sessions = manager
	}
}
