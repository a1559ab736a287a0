package capability

import "sort"

// Lattice is a directed graph of action-implication edges.
// An edge admin -> write means any admin(R) capability satisfies a write(R)
// requirement. Implication is reflexive and transitive; edges are keyed by
// action name only, so they apply uniformly across resources.
//
// A Lattice is built once and read afterwards; it is safe for concurrent
// readers as long as AddImplication is not called after the lattice is shared.
type Lattice struct {
	edges map[string]map[string]struct{}
}

// NewLattice creates an empty lattice with no implication edges.
func NewLattice() *Lattice {
	return &Lattice{edges: make(map[string]map[string]struct{})}
}

// DefaultLattice returns the standard ordering:
// admin > write > read, admin > delete.
func DefaultLattice() *Lattice {
	l := NewLattice()
	l.AddImplication(ActionAdmin, ActionWrite)
	l.AddImplication(ActionAdmin, ActionDelete)
	l.AddImplication(ActionWrite, ActionRead)
	return l
}

// AddImplication records that the stronger action implies the weaker one.
func (l *Lattice) AddImplication(stronger, weaker string) {
	if stronger == weaker {
		return
	}
	targets, ok := l.edges[stronger]
	if !ok {
		targets = make(map[string]struct{})
		l.edges[stronger] = targets
	}
	targets[weaker] = struct{}{}
}

// reachable collects every action transitively implied by the given action,
// excluding the action itself.
func (l *Lattice) reachable(action string) map[string]struct{} {
	seen := make(map[string]struct{})
	stack := []string{action}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range l.edges[cur] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	delete(seen, action)
	return seen
}

// Implies reports whether holding a satisfies a requirement for b.
// True iff a == b, or both address the same resource and b's action is
// transitively implied by a's action.
func (l *Lattice) Implies(a, b Capability) bool {
	if a == b {
		return true
	}
	if a.Resource != b.Resource {
		return false
	}
	_, ok := l.reachable(a.Action)[b.Action]
	return ok
}

// ImpliedBy returns the closure of capabilities implied by c, excluding c
// itself, sorted by action for deterministic output.
func (l *Lattice) ImpliedBy(c Capability) []Capability {
	actions := l.reachable(c.Action)
	out := make([]Capability, 0, len(actions))
	for action := range actions {
		out = append(out, New(action, c.Resource))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// Validate reports whether some available capability implies the target.
func (l *Lattice) Validate(target Capability, available []Capability) bool {
	for _, have := range available {
		if l.Implies(have, target) {
			return true
		}
	}
	return false
}

// ValidateAll reports whether every required capability is implied by some
// available capability. The match is existential, not positional: one strong
// capability may satisfy several requirements.
func (l *Lattice) ValidateAll(required, available []Capability) bool {
	for _, want := range required {
		if !l.Validate(want, available) {
			return false
		}
	}
	return true
}
