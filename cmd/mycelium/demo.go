package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/mycelium"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/catalog"
	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/spf13/cobra"
)

// latticeFromFlag loads the --lattice config, falling back to the built-in
// graph on any problem.
func latticeFromFlag(cmd *cobra.Command) *capability.Lattice {
	path, _ := cmd.Flags().GetString("lattice")
	if path == "" {
		return capability.DefaultLattice()
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Warning: cannot open lattice config %s: %v (using default)\n", path, err)
		return capability.DefaultLattice()
	}
	defer f.Close()
	l, err := capability.LoadLattice(f)
	if err != nil {
		fmt.Printf("Warning: invalid lattice config: %v (using default)\n", err)
		return capability.DefaultLattice()
	}
	return l
}

// demoFabric builds a fabric seeded with sample components so serve and
// inspect have something to show. Real hosts register their own components.
func demoFabric(cmd *cobra.Command, opts ...mycelium.Option) (*mycelium.Fabric, error) {
	opts = append([]mycelium.Option{mycelium.WithLattice(latticeFromFlag(cmd))}, opts...)
	fab := mycelium.New(opts...)

	echo := func(name string) ports.Handler {
		return ports.HandlerFunc(func(_ context.Context, in intent.Intent) (any, error) {
			return map[string]any{"handled_by": name, "intent": in.Type}, nil
		})
	}

	components := []struct {
		id   string
		meta map[string]any
	}{
		{"file-service", map[string]any{
			"type":         "file",
			"version":      "1.2.0",
			"capabilities": []capability.Capability{capability.Admin("/files")},
			"tags":         []string{"core"},
		}},
		{"user-service", map[string]any{
			"type":         "user",
			"version":      "2.0.1",
			"capabilities": []capability.Capability{capability.Write("/users")},
			"tags":         []string{"core"},
		}},
		{"audit-service", map[string]any{
			"type":         "audit",
			"version":      "0.3.0",
			"capabilities": []capability.Capability{capability.Read("/audit")},
			"tags":         []string{"observability"},
		}},
	}
	for _, c := range components {
		if err := fab.RegisterComponent(c.id, echo(c.id), c.meta); err != nil {
			fab.Close()
			return nil, fmt.Errorf("register %s: %w", c.id, err)
		}
	}

	entries := []catalog.Entry{
		{ID: "file.reader", Intent: "Reads files from the workspace", Requires: []string{"path"}, Provides: []string{"content"}, Effects: []string{"io"}},
		{ID: "file.writer", Intent: "Writes content to files", Requires: []string{"path", "content"}, Provides: []string{"bytes_written"}, Effects: []string{"io", "mutation"}},
		{ID: "user.notifier", Intent: "Notifies users about events", Requires: []string{"user_id", "message"}, Provides: []string{"delivery_status"}},
	}
	for _, e := range entries {
		if err := fab.RegisterCapabilityUnit(e); err != nil {
			fab.Close()
			return nil, fmt.Errorf("register catalog entry %s: %w", e.ID, err)
		}
	}
	return fab, nil
}
