package services

import (
	"context"
	"errors"
	"sync"

	"running-route-service/internal/domain"
)

// ErrSuperseded is returned to a call that was replaced by a newer call with the same key.
var ErrSuperseded = errors.New("synthesis superseded by a newer request")

// CallRegistry lets a newer synthesis call supersede an in-flight one for the
// same client. The superseded call's context is cancelled and its result dropped.
type CallRegistry struct {
	mu    sync.Mutex
	calls map[string]*inflight
}

type inflight struct {
	cancel context.CancelCauseFunc
}

func NewCallRegistry() *CallRegistry {
	return &CallRegistry{calls: make(map[string]*inflight)}
}

// Run executes fn under key. An empty key disables supersession.
func (r *CallRegistry) Run(
	ctx context.Context,
	key string,
	fn func(ctx context.Context) (*domain.SynthesisResult, error),
) (*domain.SynthesisResult, error) {
	if key == "" {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	call := &inflight{cancel: cancel}

	r.mu.Lock()
	if prev, ok := r.calls[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	r.calls[key] = call
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.calls[key] == call {
			delete(r.calls, key)
		}
		r.mu.Unlock()
		cancel(nil)
	}()

	res, err := fn(ctx)
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		return nil, ErrSuperseded
	}
	return res, err
}

// InFlight reports the number of calls currently registered.
func (r *CallRegistry) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
