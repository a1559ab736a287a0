/*
Package mycelium is a capability-based intent routing and discovery fabric for
in-process services.

It models authorization capabilities and their implication lattice, catalogs
registered components for scored, load-balanced discovery, and routes and
composes "intents" (requests for effect) across those components through a
pluggable validation/transformation/routing pipeline.

# Concept

Hosts (HTTP controllers, socket handlers, background jobs) register their
components into the fabric at process start and then issue intents against it.
The fabric resolves each intent to a component via an explicit rule table plus
discovery, dispatches it with a bounded timeout, and offers composition
strategies (sequential, parallel, conditional, pipeline, fan-out) with an
optional retry overlay. Nothing is persisted: the registry and catalog are
rebuilt at startup by the hosts' registration calls.

# Usage

	fab := mycelium.New()
	defer fab.Close()

	_ = fab.RegisterComponent("file-service", myFileHandler, map[string]any{
		"type":         "file",
		"capabilities": []capability.Capability{capability.Admin("/files")},
	})

	in := fab.CreateIntent("file.read", map[string]any{"path": "/files/a"}, nil)
	result, err := fab.Send(ctx, in)

Each service (discovery registry, catalog) is an actor owning its own state;
the fabric is safe for concurrent callers.
*/
package mycelium
