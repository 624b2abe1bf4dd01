package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrymomot/anvil/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerNilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil)
	assert.ErrorIs(t, err, ErrPoolRequired)
}

func TestParseCronSpec(t *testing.T) {
	t.Parallel()

	t.Run("accepts five-field expressions", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{
			"* * * * *",
			"0 * * * *",
			"0 0 * * *",
			"0 0 * * 0",
			"*/15 * * * *",
			"30 14 * * *",
		} {
			schedule, err := parseCronSpec(expr)
			require.NoError(t, err, expr)

			now := time.Now()
			assert.True(t, schedule.Next(now).After(now), expr)
		}
	})

	t.Run("rejects malformed expressions", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{
			"",
			"* * *",
			"* * * * * *",
			"60 * * * *",
			"* 25 * * *",
			"* * 32 * *",
			"* * * 13 *",
			"* * * * 8",
			"not a cron expression",
		} {
			_, err := parseCronSpec(expr)
			assert.Error(t, err, expr)
		}
	})

	t.Run("walks hourly boundaries", func(t *testing.T) {
		t.Parallel()

		schedule, err := parseCronSpec("0 * * * *")
		require.NoError(t, err)

		base := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
		next := schedule.Next(base)
		assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), next)
		assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), schedule.Next(next))
	})
}

func TestConfigQueues(t *testing.T) {
	t.Parallel()

	cfg := newConfig()
	cfg.maxWorkers = 25
	cfg.queues["email"] = 10

	queues := cfg.queueConfigs()
	assert.Equal(t, 25, queues[defaultQueue].MaxWorkers)
	assert.Equal(t, 10, queues["email"].MaxWorkers)
}

func TestConfigPeriodicJobs(t *testing.T) {
	t.Parallel()

	t.Run("registers handlers alongside the jobs", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		cfg.schedules = []schedule{{
			name:    "nightly",
			spec:    "0 0 * * *",
			handler: func(ctx context.Context) error { return nil },
		}}

		jobs, err := cfg.periodicJobs()
		require.NoError(t, err)
		assert.Len(t, jobs, 1)

		_, ok := cfg.registry.lookup("nightly")
		assert.True(t, ok)
	})

	t.Run("rejects bad schedules", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig()
		cfg.schedules = []schedule{{name: "broken", spec: "nope"}}

		_, err := cfg.periodicJobs()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid cron schedule")
	})
}

func TestTaskWorkerRun(t *testing.T) {
	t.Parallel()

	noopLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("without sessions the context stays bare", func(t *testing.T) {
		t.Parallel()

		called := false
		w := &taskWorker{logger: noopLogger}
		runner := funcTask(func(ctx context.Context) error {
			_, err := db.Current(ctx)
			assert.ErrorIs(t, err, db.ErrNoSession)
			called = true
			return nil
		})

		require.NoError(t, w.run(context.Background(), runner, nil))
		assert.True(t, called)
	})

	t.Run("with sessions binds one to the task context", func(t *testing.T) {
		t.Parallel()

		w := &taskWorker{
			sessions: db.NewManagerFromPools(nil, nil),
			logger:   noopLogger,
		}
		runner := funcTask(func(ctx context.Context) error {
			s, err := db.Current(ctx)
			require.NoError(t, err)
			assert.False(t, s.InTransaction())
			return nil
		})

		require.NoError(t, w.run(context.Background(), runner, nil))
	})

	t.Run("with sessions propagates handler error", func(t *testing.T) {
		t.Parallel()

		runErr := errors.New("task failed")
		w := &taskWorker{
			sessions: db.NewManagerFromPools(nil, nil),
			logger:   noopLogger,
		}
		runner := funcTask(func(ctx context.Context) error { return runErr })

		assert.ErrorIs(t, w.run(context.Background(), runner, nil), runErr)
	})
}
