package discovery

import (
	"fmt"
	"math/rand"
)

// Strategy selects one among several matching components.
type Strategy string

const (
	// RoundRobin rotates through matches with a counter that persists across
	// calls.
	RoundRobin Strategy = "round_robin"
	// LeastConnections picks the component with the fewest recorded
	// selections and increments its counter.
	LeastConnections Strategy = "least_connections"
	// WeightedRoundRobin picks randomly with probability proportional to
	// match score.
	WeightedRoundRobin Strategy = "weighted_round_robin"
	// Random picks uniformly.
	Random Strategy = "random"
)

// BestMatch finds the components matching the pattern and selects one
// according to the load-balancing strategy. An empty match set yields
// ErrNoAvailableTargets.
func (r *Registry) BestMatch(pattern Pattern, strategy Strategy) (Match, error) {
	matches := r.Find(pattern)
	if len(matches) == 0 {
		return Match{}, ErrNoAvailableTargets
	}

	var selected Match
	var selErr error
	err := r.do(func() {
		switch strategy {
		case RoundRobin:
			selected = matches[r.rrCounter%uint64(len(matches))]
			r.rrCounter++
		case LeastConnections:
			selected = matches[0]
			for _, m := range matches[1:] {
				if r.connections[m.Record.ID] < r.connections[selected.Record.ID] {
					selected = m
				}
			}
			r.connections[selected.Record.ID]++
		case WeightedRoundRobin:
			selected = weightedPick(matches)
		case Random:
			selected = matches[rand.Intn(len(matches))]
		default:
			selErr = fmt.Errorf("unknown load balancing strategy %q", strategy)
		}
	})
	if err != nil {
		return Match{}, err
	}
	if selErr != nil {
		return Match{}, selErr
	}
	return selected, nil
}

// ReleaseConnection decrements the least-connections counter for a component,
// typically after its dispatch completes.
func (r *Registry) ReleaseConnection(id string) {
	_ = r.do(func() {
		if r.connections[id] > 0 {
			r.connections[id]--
		}
	})
}

// weightedPick samples a match with probability proportional to its score.
// Non-positive scores carry no weight; if nothing weighs in, fall back to
// uniform.
func weightedPick(matches []Match) Match {
	total := 0.0
	for _, m := range matches {
		if m.Score > 0 {
			total += m.Score
		}
	}
	if total <= 0 {
		return matches[rand.Intn(len(matches))]
	}
	roll := rand.Float64() * total
	for _, m := range matches {
		if m.Score <= 0 {
			continue
		}
		roll -= m.Score
		if roll < 0 {
			return m
		}
	}
	return matches[len(matches)-1]
}
