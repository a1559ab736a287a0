package routing_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/aretw0/mycelium/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeWithRetry_ExhaustsRetries(t *testing.T) {
	reg := newRegistry(t)
	var attempts atomic.Int64
	failing := ports.HandlerFunc(func(_ context.Context, _ intent.Intent) (any, error) {
		attempts.Add(1)
		return nil, errors.New("flaky backend down")
	})
	require.NoError(t, reg.Register("flaky-service", failing, map[string]any{"type": "flaky"}))
	router := routing.NewRouter(reg, routing.WithRules([]routing.Rule{
		routing.TypeContains("flaky", "flaky"),
	}))

	intents := []intent.Intent{intent.New("flaky.op", nil, nil)}

	_, err := router.ComposeWithRetry(context.Background(), intents, intent.Sequential,
		routing.ComposeOpts{},
		routing.RetryOpts{MaxRetries: 2, Delay: time.Millisecond})

	assert.ErrorIs(t, err, routing.ErrMaxRetriesExceeded)
	assert.Contains(t, err.Error(), "flaky backend down", "the last failure is carried in the wrap")
	assert.Equal(t, int64(3), attempts.Load(), "initial attempt plus exactly 2 retries")
}

func TestComposeWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	reg := newRegistry(t)
	var attempts atomic.Int64
	flaky := ports.HandlerFunc(func(_ context.Context, _ intent.Intent) (any, error) {
		if attempts.Add(1) < 3 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, reg.Register("flaky-service", flaky, map[string]any{"type": "flaky"}))
	router := routing.NewRouter(reg, routing.WithRules([]routing.Rule{
		routing.TypeContains("flaky", "flaky"),
	}))

	intents := []intent.Intent{intent.New("flaky.op", nil, nil)}

	out, err := router.ComposeWithRetry(context.Background(), intents, intent.Sequential,
		routing.ComposeOpts{},
		routing.RetryOpts{MaxRetries: 5, Delay: time.Millisecond, Exponential: true, MaxDelay: 4 * time.Millisecond})
	require.NoError(t, err)

	results := out.([]routing.Result)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Value)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestRetryOptsBackoff(t *testing.T) {
	flat := routing.RetryOpts{Delay: 100 * time.Millisecond}
	exp := routing.RetryOpts{Delay: 100 * time.Millisecond, Exponential: true, MaxDelay: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, flat.Backoff(3))
	assert.Equal(t, 100*time.Millisecond, exp.Backoff(0))
	assert.Equal(t, 200*time.Millisecond, exp.Backoff(1))
	assert.Equal(t, 400*time.Millisecond, exp.Backoff(2))
	assert.Equal(t, 500*time.Millisecond, exp.Backoff(3), "capped at MaxDelay")
}
