package capability

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LatticeConfig is the YAML shape for a data-driven action graph:
//
//	actions:
//	  - action: admin
//	    implies: [write, delete]
//	  - action: write
//	    implies: [read]
type LatticeConfig struct {
	Actions []ActionEdges `yaml:"actions"`
}

// ActionEdges lists the actions directly implied by one action.
type ActionEdges struct {
	Action  string   `yaml:"action"`
	Implies []string `yaml:"implies"`
}

// LoadLattice reads a LatticeConfig document and builds the graph.
func LoadLattice(r io.Reader) (*Lattice, error) {
	var cfg LatticeConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode lattice config: %w", err)
	}
	l := NewLattice()
	for _, edges := range cfg.Actions {
		if edges.Action == "" {
			return nil, fmt.Errorf("lattice config: entry with empty action")
		}
		for _, weaker := range edges.Implies {
			l.AddImplication(edges.Action, weaker)
		}
	}
	return l, nil
}
