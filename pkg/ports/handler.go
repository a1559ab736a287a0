package ports

import (
	"context"

	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/intent"
)

// Handler is the contract every registered component fulfills: receive an
// intent, produce an effect. Implementations should honor ctx cancellation;
// the dispatcher cancels it when the dispatch timeout elapses.
type Handler interface {
	Handle(ctx context.Context, in intent.Intent) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, in intent.Intent) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, in intent.Intent) (any, error) {
	return f(ctx, in)
}

// HealthProbe is an optional interface a component may implement to report its
// own health. Components without it are considered healthy while their handle
// is live.
type HealthProbe interface {
	CheckHealth(ctx context.Context) Health
}

// Describable is an optional interface a component may implement so the
// registry can derive metadata (type, capabilities, tags, dependencies) at
// registration time instead of requiring the caller to spell everything out.
type Describable interface {
	Describe() Description
}

// Description is the self-reported metadata of a component.
type Description struct {
	Type         string
	Version      string
	Capabilities []capability.Capability
	Dependencies []string
	Tags         []string
	Interface    string
}
