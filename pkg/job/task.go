package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
)

// taskRunner executes a task from its raw JSON payload. Typed handlers
// are adapted to this interface so the registry can hold any of them.
type taskRunner interface {
	run(ctx context.Context, payload json.RawMessage) error
}

// registry maps task names to their runners.
type registry struct {
	mu      sync.RWMutex
	runners map[string]taskRunner
}

func newRegistry() *registry {
	return &registry{runners: make(map[string]taskRunner)}
}

func (r *registry) add(name string, tr taskRunner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[name] = tr
}

func (r *registry) lookup(name string) (taskRunner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tr, ok := r.runners[name]
	return tr, ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Collect(maps.Keys(r.runners))
}

// typedTask adapts a handler with a typed payload to taskRunner by
// unmarshaling the raw payload before the call. An empty payload skips
// unmarshaling and hands the handler a zero value.
type typedTask[P any] struct {
	handle func(context.Context, P) error
}

func (tt *typedTask[P]) run(ctx context.Context, raw json.RawMessage) error {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return errors.Join(ErrInvalidPayload, err)
		}
	}
	return tt.handle(ctx, payload)
}

// funcTask adapts a payload-less handler, used for scheduled tasks.
type funcTask func(context.Context) error

func (ft funcTask) run(ctx context.Context, _ json.RawMessage) error {
	return ft(ctx)
}
