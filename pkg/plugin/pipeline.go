package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/mycelium/pkg/intent"
)

// Type classifies which stage of the dispatch path a plugin extends.
type Type string

const (
	Validation     Type = "validation"
	Transformation Type = "transformation"
	Routing        Type = "routing"
	Composition    Type = "composition"
)

// Plugin is a bundle of optional hooks. A nil hook is a pass-through: a
// validation plugin with a nil Validate accepts everything, a transformation
// plugin with a nil Transform returns the intent unchanged.
type Plugin struct {
	Name     string
	Type     Type
	Priority int

	Validate  func(in intent.Intent) error
	Transform func(in intent.Intent) (intent.Intent, error)
	Route     func(in intent.Intent) (string, error)
	Compose   func(intents []intent.Intent) ([]intent.Intent, error)
}

// Pipeline holds registered plugins in priority order.
// It is safe for concurrent use.
type Pipeline struct {
	mu      sync.RWMutex
	plugins []Plugin
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register adds a plugin. Plugins are not deduplicated; a plugin registered
// twice runs twice.
func (p *Pipeline) Register(pl Plugin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plugins = append(p.plugins, pl)
}

// Unregister removes every plugin with the given name.
func (p *Pipeline) Unregister(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.plugins[:0]
	for _, pl := range p.plugins {
		if pl.Name != name {
			kept = append(kept, pl)
		}
	}
	p.plugins = kept
}

// ByType returns the plugins of the given type sorted by descending priority.
func (p *Pipeline) ByType(t Type) []Plugin {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Plugin, 0, len(p.plugins))
	for _, pl := range p.plugins {
		if pl.Type == t {
			out = append(out, pl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// RunValidate threads the intent through every validation plugin in priority
// order, short-circuiting on the first error. A panicking hook is converted to
// an error at the pipeline boundary.
func (p *Pipeline) RunValidate(in intent.Intent) error {
	for _, pl := range p.ByType(Validation) {
		if pl.Validate == nil {
			continue
		}
		if err := runHook(pl.Name, func() error { return pl.Validate(in) }); err != nil {
			return err
		}
	}
	return nil
}

// RunTransform chains the intent through every transformation plugin in
// priority order. The first error stops the chain.
func (p *Pipeline) RunTransform(in intent.Intent) (intent.Intent, error) {
	current := in
	for _, pl := range p.ByType(Transformation) {
		if pl.Transform == nil {
			continue
		}
		var next intent.Intent
		err := runHook(pl.Name, func() error {
			var hookErr error
			next, hookErr = pl.Transform(current)
			return hookErr
		})
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

// RunCompose chains the intent set through every composition plugin in
// priority order, letting plugins rewrite the set (expand, reorder, drop)
// before a composition strategy executes it. The first error stops the chain.
func (p *Pipeline) RunCompose(intents []intent.Intent) ([]intent.Intent, error) {
	current := intents
	for _, pl := range p.ByType(Composition) {
		if pl.Compose == nil {
			continue
		}
		var next []intent.Intent
		err := runHook(pl.Name, func() error {
			var hookErr error
			next, hookErr = pl.Compose(current)
			return hookErr
		})
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

// runHook executes fn, converting a panic into an error so one misbehaving
// plugin cannot crash its caller.
func runHook(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %q panicked: %v", name, r)
		}
	}()
	return fn()
}
