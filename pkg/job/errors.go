package job

import "errors"

var (
	// ErrUnknownTask reports an enqueue or execution attempt for a task
	// name that was never registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidPayload reports a payload that does not unmarshal into
	// the handler's payload type.
	ErrInvalidPayload = errors.New("job: invalid payload")

	// ErrAlreadyStarted reports a second Start on a running manager.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted reports a Stop on a manager that is not running.
	ErrNotStarted = errors.New("job: not started")

	// ErrPoolRequired reports a nil database pool.
	ErrPoolRequired = errors.New("job: pool is required")
)
