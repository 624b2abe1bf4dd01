package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned when the job manager readiness check fails.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

var (
	errManagerNil        = errors.New("manager is nil")
	errManagerNotStarted = errors.New("manager not started")
)

// Healthcheck wraps a readiness probe over the manager: started, and
// able to reach the database the queue lives in. Compatible with
// health.CheckFunc.
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("jobs", job.Healthcheck(manager)),
//	)
func Healthcheck(m *Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return errors.Join(ErrHealthcheckFailed, errManagerNil)
		}
		if !m.isStarted() {
			return errors.Join(ErrHealthcheckFailed, errManagerNotStarted)
		}

		// River keeps its job tables in the same pool, so one ping
		// covers connectivity and queue storage.
		if err := m.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}

		return nil
	}
}
