package job

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"
)

const (
	defaultMaxWorkers = 100
	defaultQueue      = river.QueueDefault
)

// Manager processes background jobs with River. It embeds Enqueuer, so
// one value both dispatches and works jobs.
type Manager struct {
	*Enqueuer
	registry *registry
	workers  *river.Workers
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager creates a job manager. The River client exists before
// Start, so jobs can be enqueued while the manager is still down; they
// sit in the queue until processing begins.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	periodic, err := cfg.periodicJobs()
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{
		registry: cfg.registry,
		sessions: cfg.sessions,
		logger:   cfg.logger,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       cfg.queueConfigs(),
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		Enqueuer: &Enqueuer{
			pool:   pool,
			client: client,
			logger: cfg.logger,
		},
		registry: cfg.registry,
		workers:  workers,
		logger:   cfg.logger,
	}, nil
}

// queueConfigs builds the River queue set: the default queue plus any
// named queues with their own worker counts.
func (c *config) queueConfigs() map[string]river.QueueConfig {
	queues := map[string]river.QueueConfig{
		defaultQueue: {MaxWorkers: c.maxWorkers},
	}
	for name, workers := range c.queues {
		queues[name] = river.QueueConfig{MaxWorkers: workers}
	}
	return queues
}

// periodicJobs converts registered schedules into River periodic jobs
// and registers their handlers as payload-less tasks.
func (c *config) periodicJobs() ([]*river.PeriodicJob, error) {
	var jobs []*river.PeriodicJob
	for _, sched := range c.schedules {
		cronSched, err := parseCronSpec(sched.spec)
		if err != nil {
			return nil, fmt.Errorf("job: invalid cron schedule %q: %w", sched.spec, err)
		}

		name := sched.name
		jobs = append(jobs, river.NewPeriodicJob(
			cronSched,
			func() (river.JobArgs, *river.InsertOpts) {
				return &taskArgs{TaskName: name}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		))

		c.registry.add(sched.name, funcTask(sched.handler))
	}
	return jobs, nil
}

// parseCronSpec parses a five-field cron expression. The resulting
// cron.Schedule satisfies river.PeriodicSchedule directly.
func parseCronSpec(spec string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(spec)
}

// isStarted reports whether the manager is currently processing jobs.
func (m *Manager) isStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.Info("job manager started",
		slog.Int("tasks", len(m.registry.names())),
	)
	return nil
}

// Stop shuts the manager down, waiting for in-flight jobs to finish.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// Enqueue adds a job for a registered task. Unlike the embedded
// Enqueuer, the manager validates the task name at enqueue time.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error {
	if _, ok := m.registry.lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.Enqueuer.Enqueue(ctx, name, payload, opts...)
}

// EnqueueTx adds a job for a registered task within a transaction. The
// job becomes visible only after the transaction commits.
func (m *Manager) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...EnqueueOption) error {
	if _, ok := m.registry.lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.Enqueuer.EnqueueTx(ctx, tx, name, payload, opts...)
}

// StartFunc returns a startup hook that starts the manager.
func (m *Manager) StartFunc() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Start(ctx)
	}
}

// Shutdown returns a shutdown hook that stops the manager.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

// taskArgs is the single River job type every task travels in: the task
// name routes to a registered runner, the payload stays raw until that
// runner decodes it.
type taskArgs struct {
	TaskName  string          `json:"task_name"`
	UniqueKey string          `json:"unique_key,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string {
	return "anvil:task"
}

// taskWorker dispatches every taskArgs job through the registry.
type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *registry
	sessions *db.Manager
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	runner, ok := w.registry.lookup(job.Args.TaskName)
	if !ok || runner == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTask, job.Args.TaskName)
	}

	w.logger.DebugContext(ctx, "executing task",
		slog.String("task", job.Args.TaskName),
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)

	if err := w.run(ctx, runner, job.Args.Payload); err != nil {
		w.logger.ErrorContext(ctx, "task failed",
			slog.String("task", job.Args.TaskName),
			slog.Int64("job_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.Any("error", err),
		)
		return err
	}

	w.logger.DebugContext(ctx, "task completed",
		slog.String("task", job.Args.TaskName),
		slog.Int64("job_id", job.ID),
	)
	return nil
}

// run executes the task, with a standalone database session bound to the
// context when the manager was configured with one. The task then runs
// inside a single transaction settled by the task's outcome.
func (w *taskWorker) run(ctx context.Context, runner taskRunner, payload json.RawMessage) error {
	if w.sessions == nil {
		return runner.run(ctx, payload)
	}
	return w.sessions.WithStandaloneSession(ctx, func(ctx context.Context) error {
		return runner.run(ctx, payload)
	})
}
