package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/mycelium/pkg/intent"
)

// RetryOpts configures the retry overlay.
type RetryOpts struct {
	// MaxRetries is the number of extra attempts after the initial one.
	MaxRetries int
	// Delay is the base sleep between attempts.
	Delay time.Duration
	// Exponential doubles the delay each attempt, capped at MaxDelay.
	Exponential bool
	// MaxDelay caps the exponential backoff. Ignored when zero.
	MaxDelay time.Duration
}

// Backoff computes the sleep before retry number attempt (zero-based):
// min(base * 2^attempt, max) under exponential backoff, base otherwise.
func (o RetryOpts) Backoff(attempt int) time.Duration {
	if !o.Exponential {
		return o.Delay
	}
	d := o.Delay << uint(attempt)
	if o.MaxDelay > 0 && d > o.MaxDelay {
		d = o.MaxDelay
	}
	return d
}

// ComposeWithRetry wraps Compose with bounded retries. It is a synchronous
// blocking loop: the calling flow sleeps between attempts. After exhausting
// retries the last failure is returned wrapped in ErrMaxRetriesExceeded.
func (r *Router) ComposeWithRetry(ctx context.Context, intents []intent.Intent, strategy intent.Strategy, opts ComposeOpts, retry RetryOpts) (any, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		value, err := r.Compose(ctx, intents, strategy, opts)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt >= retry.MaxRetries {
			break
		}
		r.metrics.ObserveRetry()
		r.logger.Debug("composition retry", "attempt", attempt+1, "strategy", strategy, "err", err)

		select {
		case <-time.After(retry.Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, retry.MaxRetries+1, lastErr)
}
