package routing

import (
	"context"
	"time"

	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/intent"
)

// Dispatch sends the intent to the target and blocks until a response arrives
// or the dispatch timeout elapses. On timeout the component's context is
// cancelled and ErrTimeout returned; a component that ignores its context may
// still finish its work, but the result is discarded.
func (r *Router) Dispatch(ctx context.Context, in intent.Intent, target discovery.Record) (any, error) {
	if target.Handle == nil {
		return nil, ErrTargetProcessorNotFound
	}
	dispatchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type outcome struct {
		value any
		err   error
	}
	results := make(chan outcome, 1)

	start := time.Now()
	go func() {
		value, err := target.Handle.Handle(dispatchCtx, in)
		results <- outcome{value: value, err: err}
	}()

	select {
	case out := <-results:
		if out.err != nil {
			r.metrics.ObserveDispatch("error", time.Since(start))
			r.logger.Debug("dispatch failed", "intent", in.ID, "target", target.ID, "err", out.err)
			return nil, out.err
		}
		r.metrics.ObserveDispatch("ok", time.Since(start))
		return out.value, nil
	case <-dispatchCtx.Done():
		if err := ctx.Err(); err != nil {
			// Caller cancellation, not a timeout.
			r.metrics.ObserveDispatch("error", time.Since(start))
			return nil, err
		}
		r.metrics.ObserveDispatch("timeout", time.Since(start))
		r.logger.Warn("dispatch timed out", "intent", in.ID, "target", target.ID, "timeout", r.timeout)
		return nil, ErrTimeout
	}
}
