package discovery

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/mycelium/internal/logging"
	"github.com/aretw0/mycelium/pkg/adapters/memory"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/observability"
	"github.com/aretw0/mycelium/pkg/ports"
)

// DefaultHealthTTL bounds how long a cached health observation stays valid.
const DefaultHealthTTL = 30 * time.Second

// DefaultProbeTimeout bounds a single health probe.
const DefaultProbeTimeout = 30 * time.Second

// Registry is the component discovery service.
type Registry struct {
	lattice      *capability.Lattice
	cache        ports.HealthCache
	ttl          time.Duration
	probeTimeout time.Duration
	logger       *slog.Logger
	metrics      *observability.Metrics

	ops    chan func()
	ctx    context.Context
	cancel context.CancelFunc

	// Loop-owned state. Touched only by the actor goroutine.
	records     map[string]Record
	rrCounter   uint64
	connections map[string]int
}

// Option configures the Registry.
type Option func(*Registry)

// WithHealthCache sets the health cache backend (in-memory by default).
func WithHealthCache(cache ports.HealthCache) Option {
	return func(r *Registry) {
		r.cache = cache
	}
}

// WithHealthTTL sets the health cache TTL.
func WithHealthTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithProbeTimeout bounds individual health probes.
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.probeTimeout = d
	}
}

// WithLogger configures structured logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates a registry and starts its actor loop and health janitor.
// Callers must Close it when done.
func NewRegistry(lattice *capability.Lattice, opts ...Option) *Registry {
	if lattice == nil {
		lattice = capability.DefaultLattice()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		lattice:      lattice,
		ttl:          DefaultHealthTTL,
		probeTimeout: DefaultProbeTimeout,
		logger:       logging.NewNop(),
		ops:          make(chan func()),
		ctx:          ctx,
		cancel:       cancel,
		records:      make(map[string]Record),
		connections:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = memory.NewHealthCache()
	}
	go r.loop()
	go r.janitor()
	return r
}

// loop serializes every access to the registry state.
func (r *Registry) loop() {
	for {
		select {
		case fn := <-r.ops:
			fn()
		case <-r.ctx.Done():
			return
		}
	}
}

// do posts a closure to the loop and waits for it to run.
func (r *Registry) do(fn func()) error {
	done := make(chan struct{})
	select {
	case r.ops <- func() { fn(); close(done) }:
	case <-r.ctx.Done():
		return ErrRegistryClosed
	}
	select {
	case <-done:
		return nil
	case <-r.ctx.Done():
		return ErrRegistryClosed
	}
}

// Close stops the actor loop and the janitor. The registry must not be used
// afterwards.
func (r *Registry) Close() {
	r.cancel()
}

// Lattice exposes the capability lattice used for matching.
func (r *Registry) Lattice() *capability.Lattice {
	return r.lattice
}

// Register stores a component record. The handle must be non-nil. Metadata
// defaults are derived from the handle (self-description, ID naming, version
// 1.0.0) and the caller-supplied map overrides them key by key. Re-registering
// an ID replaces the record.
func (r *Registry) Register(id string, handle ports.Handler, meta map[string]any) error {
	if handle == nil {
		return ErrNilHandle
	}
	derived := deriveMetadata(id, handle)
	merged, err := mergeMetadata(derived, meta)
	if err != nil {
		return err
	}
	rec := Record{
		ID:           id,
		Handle:       handle,
		Metadata:     merged,
		RegisteredAt: time.Now(),
	}
	err = r.do(func() {
		r.records[id] = rec
		r.metrics.SetComponents(len(r.records))
	})
	if err != nil {
		return err
	}
	r.logger.Debug("component registered", "id", id, "type", merged.Type, "version", merged.Version)
	return nil
}

// Unregister removes a component and purges its health-cache and
// load-balancer state. Unknown IDs are a no-op.
func (r *Registry) Unregister(id string) error {
	err := r.do(func() {
		delete(r.records, id)
		delete(r.connections, id)
		r.metrics.SetComponents(len(r.records))
	})
	if err != nil {
		return err
	}
	if err := r.cache.Delete(r.ctx, id); err != nil {
		r.logger.Warn("health cache delete failed", "id", id, "err", err)
	}
	r.logger.Debug("component unregistered", "id", id)
	return nil
}

// Get returns a copy of the record for the ID.
func (r *Registry) Get(id string) (Record, bool) {
	var rec Record
	var ok bool
	if err := r.do(func() { rec, ok = r.records[id] }); err != nil {
		return Record{}, false
	}
	return rec, ok
}

// List returns a snapshot of every record, sorted by ID for deterministic
// iteration.
func (r *Registry) List() []Record {
	var out []Record
	_ = r.do(func() {
		out = make([]Record, 0, len(r.records))
		for _, rec := range r.records {
			out = append(out, rec)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateMetadata shallow-merges the partial map into the component's metadata.
// The read-merge-write runs as one loop operation so concurrent updates to the
// same record never overwrite each other.
func (r *Registry) UpdateMetadata(id string, partial map[string]any) error {
	var opErr error
	err := r.do(func() {
		rec, ok := r.records[id]
		if !ok {
			opErr = ErrComponentNotRegistered
			return
		}
		merged, mergeErr := mergeMetadata(rec.Metadata, partial)
		if mergeErr != nil {
			opErr = mergeErr
			return
		}
		rec.Metadata = merged
		r.records[id] = rec
	})
	if err != nil {
		return err
	}
	return opErr
}
