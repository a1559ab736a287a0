package mycelium_test

import (
	"context"
	"testing"

	"github.com/aretw0/mycelium"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/catalog"
	"github.com/aretw0/mycelium/pkg/discovery"
	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/plugin"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/aretw0/mycelium/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFabric_Integration(t *testing.T) {
	fab := mycelium.New()
	defer fab.Close()

	handled := make(chan string, 8)
	fileHandler := ports.HandlerFunc(func(_ context.Context, in intent.Intent) (any, error) {
		handled <- in.Type
		return map[string]any{"ok": true}, nil
	})

	require.NoError(t, fab.RegisterComponent("file-service", fileHandler, map[string]any{
		"type":         "file",
		"capabilities": []capability.Capability{capability.Admin("/files")},
	}))

	// Discovery: the write requirement is satisfied through implication.
	matches := fab.FindComponents(discovery.Pattern{
		Type:         "file",
		Capabilities: []capability.Capability{capability.Write("/files")},
	})
	require.Len(t, matches, 1)

	// Routing + dispatch.
	in := fab.CreateIntent("file.read", map[string]any{"path": "/files/a"}, nil)
	out, err := fab.Send(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, out)
	assert.Equal(t, "file.read", <-handled)

	// Delegation round-trip.
	delegated, err := fab.DelegateIntent(in, "file-service")
	require.NoError(t, err)
	rec, err := fab.RouteIntent(delegated)
	require.NoError(t, err)
	assert.Equal(t, "file-service", rec.ID)

	// Composition.
	intents := []intent.Intent{
		fab.CreateIntent("file.stat", nil, nil),
		fab.CreateIntent("file.stat", nil, nil),
	}
	result, err := fab.ComposeIntents(context.Background(), intents, intent.Sequential, routing.ComposeOpts{})
	require.NoError(t, err)
	assert.Len(t, result.([]routing.Result), 2)

	// Plugin surface.
	fab.RegisterPlugin(plugin.Plugin{Name: "audit", Type: plugin.Validation, Priority: 5})
	assert.Len(t, fab.GetPluginsByType(plugin.Validation), 1)
	fab.UnregisterPlugin("audit")
	assert.Empty(t, fab.GetPluginsByType(plugin.Validation))

	// Catalog surface.
	require.NoError(t, fab.RegisterCapabilityUnit(catalog.Entry{
		ID:     "file.reader",
		Intent: "Reads files from the workspace",
	}))
	assert.Len(t, fab.DiscoverCapabilityUnits("reads"), 1)
}

func TestFabric_CompositeIntent(t *testing.T) {
	fab := mycelium.New()
	defer fab.Close()

	comp := fab.CreateCompositeIntent([]intent.Intent{
		fab.CreateIntent("a", nil, nil),
	}, intent.Parallel)
	assert.Equal(t, intent.Parallel, comp.Strategy)

	_, err := fab.ComposeIntents(context.Background(), comp.Intents, intent.Strategy("nope"), routing.ComposeOpts{})
	assert.ErrorIs(t, err, routing.ErrUnsupportedCompositionPattern)
}
