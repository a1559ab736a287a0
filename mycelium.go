package mycelium

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/mycelium/internal/logging"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/catalog"
	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/observability"
	"github.com/aretw0/mycelium/pkg/plugin"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/aretw0/mycelium/pkg/routing"
)

// Fabric is the high-level entry point of the library. It wires the
// capability lattice, the discovery registry, the intent router and the
// capability catalog, and exposes the surface hosts consume.
type Fabric struct {
	lattice  *capability.Lattice
	pipeline *plugin.Pipeline
	registry *discovery.Registry
	router   *routing.Router
	catalog  *catalog.Catalog

	logger  *slog.Logger
	metrics *observability.Metrics

	healthCache     ports.HealthCache
	healthTTL       time.Duration
	dispatchTimeout time.Duration
	rules           []routing.Rule
	defaultTarget   string
	strategy        discovery.Strategy
}

// Option configures the Fabric.
type Option func(*Fabric)

// WithLattice replaces the default action-implication lattice.
func WithLattice(l *capability.Lattice) Option {
	return func(f *Fabric) { f.lattice = l }
}

// WithLogger configures structured logging for every service.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fabric) { f.logger = logger }
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(f *Fabric) { f.metrics = m }
}

// WithHealthCache sets the discovery health cache backend.
func WithHealthCache(cache ports.HealthCache) Option {
	return func(f *Fabric) { f.healthCache = cache }
}

// WithHealthTTL sets the health cache TTL.
func WithHealthTTL(ttl time.Duration) Option {
	return func(f *Fabric) { f.healthTTL = ttl }
}

// WithDispatchTimeout bounds individual dispatches.
func WithDispatchTimeout(d time.Duration) Option {
	return func(f *Fabric) { f.dispatchTimeout = d }
}

// WithRules replaces the routing rule table.
func WithRules(rules []routing.Rule) Option {
	return func(f *Fabric) { f.rules = rules }
}

// WithDefaultTarget sets the last-resort routing target.
func WithDefaultTarget(id string) Option {
	return func(f *Fabric) { f.defaultTarget = id }
}

// WithStrategy sets the load-balancing strategy for routing.
func WithStrategy(s discovery.Strategy) Option {
	return func(f *Fabric) { f.strategy = s }
}

// New creates a fabric and starts its services. Callers must Close it.
func New(opts ...Option) *Fabric {
	f := &Fabric{
		pipeline:        plugin.NewPipeline(),
		logger:          logging.NewNop(),
		healthTTL:       discovery.DefaultHealthTTL,
		dispatchTimeout: routing.DefaultDispatchTimeout,
		rules:           routing.DefaultRules(),
		strategy:        discovery.RoundRobin,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.lattice == nil {
		f.lattice = capability.DefaultLattice()
	}

	regOpts := []discovery.Option{
		discovery.WithHealthTTL(f.healthTTL),
		discovery.WithLogger(f.logger),
		discovery.WithMetrics(f.metrics),
	}
	if f.healthCache != nil {
		regOpts = append(regOpts, discovery.WithHealthCache(f.healthCache))
	}
	f.registry = discovery.NewRegistry(f.lattice, regOpts...)

	routerOpts := []routing.Option{
		routing.WithPipeline(f.pipeline),
		routing.WithRules(f.rules),
		routing.WithDispatchTimeout(f.dispatchTimeout),
		routing.WithStrategy(f.strategy),
		routing.WithLogger(f.logger),
		routing.WithMetrics(f.metrics),
	}
	if f.defaultTarget != "" {
		routerOpts = append(routerOpts, routing.WithDefaultTarget(f.defaultTarget))
	}
	f.router = routing.NewRouter(f.registry, routerOpts...)

	f.catalog = catalog.New()
	return f
}

// Close stops the fabric's services.
func (f *Fabric) Close() {
	f.registry.Close()
	f.catalog.Close()
}

// Registry exposes the discovery service.
func (f *Fabric) Registry() *discovery.Registry { return f.registry }

// Router exposes the intent router.
func (f *Fabric) Router() *routing.Router { return f.router }

// Catalog exposes the capability catalog.
func (f *Fabric) Catalog() *catalog.Catalog { return f.catalog }

// Lattice exposes the capability lattice.
func (f *Fabric) Lattice() *capability.Lattice { return f.lattice }

// RegisterComponent stores a component in discovery.
func (f *Fabric) RegisterComponent(id string, handle ports.Handler, metadata map[string]any) error {
	return f.registry.Register(id, handle, metadata)
}

// UnregisterComponent removes a component and its cached state.
func (f *Fabric) UnregisterComponent(id string) error {
	return f.registry.Unregister(id)
}

// FindComponents returns scored matches for the pattern.
func (f *Fabric) FindComponents(pattern discovery.Pattern) []discovery.Match {
	return f.registry.Find(pattern)
}

// GetBestMatch selects one match by load-balancing strategy.
func (f *Fabric) GetBestMatch(pattern discovery.Pattern, strategy discovery.Strategy) (discovery.Match, error) {
	return f.registry.BestMatch(pattern, strategy)
}

// GetComponentHealth returns the component's current health.
func (f *Fabric) GetComponentHealth(id string) ports.Health {
	return f.registry.Health(id)
}

// UpdateComponentMetadata shallow-merges the partial metadata.
func (f *Fabric) UpdateComponentMetadata(id string, partial map[string]any) error {
	return f.registry.UpdateMetadata(id, partial)
}

// CreateIntent builds an intent value.
func (f *Fabric) CreateIntent(intentType string, payload map[string]any, caps []capability.Capability) intent.Intent {
	return intent.New(intentType, payload, caps)
}

// CreateCompositeIntent groups intents under a strategy.
func (f *Fabric) CreateCompositeIntent(intents []intent.Intent, strategy intent.Strategy) intent.Composite {
	return intent.NewComposite(intents, strategy)
}

// RouteIntent resolves a target for the intent.
func (f *Fabric) RouteIntent(in intent.Intent) (discovery.Record, error) {
	return f.router.Route(in)
}

// DelegateIntent stamps the intent for a specific target.
func (f *Fabric) DelegateIntent(in intent.Intent, targetID string) (intent.Intent, error) {
	return f.router.Delegate(in, targetID)
}

// Send validates, transforms, routes and dispatches the intent.
func (f *Fabric) Send(ctx context.Context, in intent.Intent) (any, error) {
	return f.router.Send(ctx, in)
}

// ComposeIntents executes a set of intents under the strategy.
func (f *Fabric) ComposeIntents(ctx context.Context, intents []intent.Intent, strategy intent.Strategy, opts routing.ComposeOpts) (any, error) {
	return f.router.Compose(ctx, intents, strategy, opts)
}

// ComposeIntentsWithRetry wraps composition with bounded retries.
func (f *Fabric) ComposeIntentsWithRetry(ctx context.Context, intents []intent.Intent, strategy intent.Strategy, opts routing.ComposeOpts, retry routing.RetryOpts) (any, error) {
	return f.router.ComposeWithRetry(ctx, intents, strategy, opts, retry)
}

// ValidateIntent runs the intent through the validation plugins.
func (f *Fabric) ValidateIntent(in intent.Intent) error {
	return f.router.Validate(in)
}

// TransformIntent runs the intent through the transformation plugins.
func (f *Fabric) TransformIntent(in intent.Intent) (intent.Intent, error) {
	return f.router.Transform(in)
}

// RegisterPlugin adds a plugin to the pipeline.
func (f *Fabric) RegisterPlugin(pl plugin.Plugin) {
	f.pipeline.Register(pl)
}

// UnregisterPlugin removes every plugin with the name.
func (f *Fabric) UnregisterPlugin(name string) {
	f.pipeline.Unregister(name)
}

// GetPluginsByType lists plugins of the type, highest priority first.
func (f *Fabric) GetPluginsByType(t plugin.Type) []plugin.Plugin {
	return f.pipeline.ByType(t)
}

// RegisterCapabilityUnit stores a catalog entry.
func (f *Fabric) RegisterCapabilityUnit(entry catalog.Entry) error {
	return f.catalog.Register(entry)
}

// DiscoverCapabilityUnits answers a free-text or criteria query.
func (f *Fabric) DiscoverCapabilityUnits(query any) []catalog.Entry {
	return f.catalog.Discover(query)
}
