package routing

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/mycelium/internal/logging"
	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/observability"
	"github.com/aretw0/mycelium/pkg/plugin"
)

// DefaultDispatchTimeout bounds how long a dispatch waits for a component.
const DefaultDispatchTimeout = 5 * time.Second

// Rule pairs a predicate with the component class that should handle matching
// intents. Rules are evaluated in order; the first match wins.
type Rule struct {
	Name  string
	Match func(in intent.Intent) bool
	Class string
}

// TypeContains builds a rule matching intents whose type contains the
// substring (case-insensitive).
func TypeContains(substr, class string) Rule {
	lowered := strings.ToLower(substr)
	return Rule{
		Name:  "type-contains-" + lowered,
		Class: class,
		Match: func(in intent.Intent) bool {
			return strings.Contains(strings.ToLower(in.Type), lowered)
		},
	}
}

// DefaultRules reproduces the conventional classification: file-flavored
// intents go to file components, user-flavored ones to user components.
func DefaultRules() []Rule {
	return []Rule{
		TypeContains("file", "file"),
		TypeContains("user", "user"),
	}
}

// Router resolves intents to registered components and dispatches them.
type Router struct {
	registry      *discovery.Registry
	pipeline      *plugin.Pipeline
	rules         []Rule
	defaultClass  string
	defaultTarget string
	strategy      discovery.Strategy
	timeout       time.Duration
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// Option configures the Router.
type Option func(*Router)

// WithPipeline injects the plugin pipeline used for validation,
// transformation and routing overrides.
func WithPipeline(p *plugin.Pipeline) Option {
	return func(r *Router) { r.pipeline = p }
}

// WithRules replaces the classification table.
func WithRules(rules []Rule) Option {
	return func(r *Router) { r.rules = rules }
}

// WithDefaultClass sets the class used when no rule matches.
func WithDefaultClass(class string) Option {
	return func(r *Router) { r.defaultClass = class }
}

// WithDefaultTarget sets a component ID used as last-resort target when
// discovery finds no candidate for the resolved class.
func WithDefaultTarget(id string) Option {
	return func(r *Router) { r.defaultTarget = id }
}

// WithStrategy sets the load-balancing strategy for target selection.
func WithStrategy(s discovery.Strategy) Option {
	return func(r *Router) { r.strategy = s }
}

// WithDispatchTimeout bounds individual dispatches.
func WithDispatchTimeout(d time.Duration) Option {
	return func(r *Router) { r.timeout = d }
}

// WithLogger configures structured logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *discovery.Registry, opts ...Option) *Router {
	r := &Router{
		registry:     registry,
		pipeline:     plugin.NewPipeline(),
		rules:        DefaultRules(),
		defaultClass: "default",
		strategy:     discovery.RoundRobin,
		timeout:      DefaultDispatchTimeout,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pipeline returns the router's plugin pipeline.
func (r *Router) Pipeline() *plugin.Pipeline { return r.pipeline }

// classify walks the rule table and returns the class for the intent.
func (r *Router) classify(in intent.Intent) string {
	for _, rule := range r.rules {
		if rule.Match != nil && rule.Match(in) {
			return rule.Class
		}
	}
	return r.defaultClass
}

// Route resolves a concrete target for the intent.
//
// Resolution order: a delegation stamped on the intent, then routing plugins
// (highest priority first), then the rule table plus discovery, then the
// configured default target. ErrNoRoute when everything comes up empty.
func (r *Router) Route(in intent.Intent) (discovery.Record, error) {
	if targetID, ok := in.DelegatedTo(); ok {
		rec, found := r.registry.Get(targetID)
		if !found {
			return discovery.Record{}, ErrTargetProcessorNotFound
		}
		return rec, nil
	}

	for _, pl := range r.pipeline.ByType(plugin.Routing) {
		if pl.Route == nil {
			continue
		}
		targetID, err := pl.Route(in)
		if err != nil {
			r.metrics.ObservePluginFailure(string(plugin.Routing))
			r.logger.Warn("routing plugin failed", "plugin", pl.Name, "err", err)
			continue
		}
		if targetID == "" {
			continue
		}
		if rec, found := r.registry.Get(targetID); found {
			return rec, nil
		}
	}

	class := r.classify(in)
	match, err := r.registry.BestMatch(discovery.Pattern{Type: class}, r.strategy)
	if err == nil {
		return match.Record, nil
	}
	if !errors.Is(err, discovery.ErrNoAvailableTargets) {
		return discovery.Record{}, err
	}

	if r.defaultTarget != "" {
		if rec, found := r.registry.Get(r.defaultTarget); found {
			return rec, nil
		}
	}
	return discovery.Record{}, ErrNoRoute
}

// Delegate returns a copy of the intent stamped for the target component.
// The original intent is untouched.
func (r *Router) Delegate(in intent.Intent, targetID string) (intent.Intent, error) {
	if _, found := r.registry.Get(targetID); !found {
		return intent.Intent{}, ErrTargetProcessorNotFound
	}
	return in.WithMetadata(intent.MetaDelegatedTo, targetID), nil
}

// Validate runs the intent through the validation plugins.
func (r *Router) Validate(in intent.Intent) error {
	if err := r.pipeline.RunValidate(in); err != nil {
		r.metrics.ObservePluginFailure(string(plugin.Validation))
		return err
	}
	return nil
}

// Transform runs the intent through the transformation plugins.
func (r *Router) Transform(in intent.Intent) (intent.Intent, error) {
	out, err := r.pipeline.RunTransform(in)
	if err != nil {
		r.metrics.ObservePluginFailure(string(plugin.Transformation))
	}
	return out, err
}

// Send is the full path: validate, transform, route, dispatch. The target's
// least-connections counter is released once the dispatch returns, so the
// counter reflects in-flight work only.
func (r *Router) Send(ctx context.Context, in intent.Intent) (any, error) {
	if err := r.Validate(in); err != nil {
		return nil, err
	}
	transformed, err := r.Transform(in)
	if err != nil {
		return nil, err
	}
	target, err := r.Route(transformed)
	if err != nil {
		return nil, err
	}
	defer r.registry.ReleaseConnection(target.ID)
	return r.Dispatch(ctx, transformed, target)
}
