package routing

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/plugin"
)

// Result is the outcome of one dispatched intent within a composition.
type Result struct {
	IntentID string `json:"intent_id"`
	Value    any    `json:"value,omitempty"`
	Err      error  `json:"-"`
}

// TargetResult groups the results of one fan-out branch.
type TargetResult struct {
	Target  string   `json:"target"`
	Results []Result `json:"results,omitempty"`
	Err     error    `json:"-"`
}

// FanOutResult is the record returned by the fan_out strategy.
type FanOutResult struct {
	Type    string         `json:"type"`
	Results []TargetResult `json:"results"`
}

// ComposeOpts carries strategy-specific parameters.
type ComposeOpts struct {
	// Continue is evaluated by the conditional strategy over the results
	// accumulated so far; returning false stops the composition early.
	Continue func(results []Result) bool

	// Targets lists the component IDs a fan_out broadcasts to.
	Targets []string
}

// Compose executes the intents under the given strategy. Composition plugins
// run first and may rewrite the intent set.
//
// Return shapes per strategy: sequential, parallel and conditional return
// []Result (input order); pipeline returns the merged final map[string]any;
// fan_out returns FanOutResult. Unknown strategies yield
// ErrUnsupportedCompositionPattern.
func (r *Router) Compose(ctx context.Context, intents []intent.Intent, strategy intent.Strategy, opts ComposeOpts) (any, error) {
	r.metrics.ObserveComposition(string(strategy))
	composed, err := r.pipeline.RunCompose(intents)
	if err != nil {
		r.metrics.ObservePluginFailure(string(plugin.Composition))
		return nil, err
	}
	intents = composed
	switch strategy {
	case intent.Sequential:
		return r.composeSequential(ctx, intents)
	case intent.Parallel:
		return r.composeParallel(ctx, intents), nil
	case intent.Conditional:
		return r.composeConditional(ctx, intents, opts.Continue)
	case intent.Pipeline:
		return r.composePipeline(ctx, intents)
	case intent.FanOut:
		return r.composeFanOut(ctx, intents, opts.Targets), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompositionPattern, strategy)
	}
}

// ComposeComposite executes a composite intent.
func (r *Router) ComposeComposite(ctx context.Context, comp intent.Composite, opts ComposeOpts) (any, error) {
	return r.Compose(ctx, comp.Intents, comp.Strategy, opts)
}

// composeSequential dispatches each intent in order, waiting for each before
// starting the next. The first failure stops the stage; results accumulated
// so far are returned alongside the error. Prior successes are not rolled
// back.
func (r *Router) composeSequential(ctx context.Context, intents []intent.Intent) ([]Result, error) {
	results := make([]Result, 0, len(intents))
	for _, in := range intents {
		value, err := r.Send(ctx, in)
		results = append(results, Result{IntentID: in.ID, Value: value, Err: err})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// composeParallel dispatches every intent concurrently and joins all branches
// before returning. Results land at their input index; a failed branch is
// isolated to its own slot and never aborts siblings.
func (r *Router) composeParallel(ctx context.Context, intents []intent.Intent) []Result {
	results := make([]Result, len(intents))
	var wg sync.WaitGroup
	for i, in := range intents {
		wg.Add(1)
		go func(i int, in intent.Intent) {
			defer wg.Done()
			value, err := r.Send(ctx, in)
			results[i] = Result{IntentID: in.ID, Value: value, Err: err}
		}(i, in)
	}
	wg.Wait()
	return results
}

// composeConditional executes sequentially, consulting the predicate after
// each step. A false verdict ends the composition with the results so far.
func (r *Router) composeConditional(ctx context.Context, intents []intent.Intent, cont func([]Result) bool) ([]Result, error) {
	results := make([]Result, 0, len(intents))
	for _, in := range intents {
		value, err := r.Send(ctx, in)
		results = append(results, Result{IntentID: in.ID, Value: value, Err: err})
		if err != nil {
			return results, err
		}
		if cont != nil && !cont(results) {
			break
		}
	}
	return results, nil
}

// composePipeline feeds each step's output into the next step's payload and
// returns the merged final result. Map outputs merge key-wise; anything else
// lands under "result".
func (r *Router) composePipeline(ctx context.Context, intents []intent.Intent) (map[string]any, error) {
	acc := make(map[string]any)
	for _, in := range intents {
		payload := make(map[string]any, len(in.Payload)+len(acc))
		maps.Copy(payload, in.Payload)
		maps.Copy(payload, acc)

		value, err := r.Send(ctx, in.WithPayload(payload))
		if err != nil {
			return acc, err
		}
		if m, ok := value.(map[string]any); ok {
			maps.Copy(acc, m)
		} else if value != nil {
			acc["result"] = value
		}
	}
	return acc, nil
}

// composeFanOut broadcasts the intent set to every listed target
// concurrently. Each target gets its own branch entry; an unknown target is
// reported in its slot without disturbing the others.
func (r *Router) composeFanOut(ctx context.Context, intents []intent.Intent, targets []string) FanOutResult {
	out := FanOutResult{
		Type:    string(intent.FanOut),
		Results: make([]TargetResult, len(targets)),
	}
	var wg sync.WaitGroup
	for i, targetID := range targets {
		wg.Add(1)
		go func(i int, targetID string) {
			defer wg.Done()
			rec, found := r.registry.Get(targetID)
			if !found {
				out.Results[i] = TargetResult{Target: targetID, Err: ErrTargetProcessorNotFound}
				return
			}
			results := make([]Result, len(intents))
			for j, in := range intents {
				value, err := r.Dispatch(ctx, in, rec)
				results[j] = Result{IntentID: in.ID, Value: value, Err: err}
			}
			out.Results[i] = TargetResult{Target: targetID, Results: results}
		}(i, targetID)
	}
	wg.Wait()
	return out
}
