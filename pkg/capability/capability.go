package capability

// Well-known actions. The lattice is open: these are defaults, not an enum.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
	ActionAdmin  = "admin"
)

// Capability is an (action, resource) authorization unit.
// The resource is an opaque identifier, typically a path.
type Capability struct {
	Action   string `json:"action" yaml:"action"`
	Resource string `json:"resource" yaml:"resource"`
}

// New creates a capability value.
func New(action, resource string) Capability {
	return Capability{Action: action, Resource: resource}
}

// Read returns a read capability for the resource.
func Read(resource string) Capability { return New(ActionRead, resource) }

// Write returns a write capability for the resource.
func Write(resource string) Capability { return New(ActionWrite, resource) }

// Delete returns a delete capability for the resource.
func Delete(resource string) Capability { return New(ActionDelete, resource) }

// Admin returns an admin capability for the resource.
func Admin(resource string) Capability { return New(ActionAdmin, resource) }

// String renders the capability in "action:resource" form.
func (c Capability) String() string {
	return c.Action + ":" + c.Resource
}

// Set is an unordered collection of unique capabilities.
type Set map[Capability]struct{}

// NewSet builds a set from the given capabilities, collapsing duplicates.
func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a capability into the set.
func (s Set) Add(c Capability) { s[c] = struct{}{} }

// Contains reports structural membership (no implication).
func (s Set) Contains(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Slice returns the members in unspecified order.
func (s Set) Slice() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}

// Compose collapses a list of capabilities into a set.
func Compose(caps ...Capability) Set {
	return NewSet(caps...)
}

// MergeSets unions multiple capability sets.
func MergeSets(sets ...Set) Set {
	out := make(Set)
	for _, s := range sets {
		for c := range s {
			out[c] = struct{}{}
		}
	}
	return out
}

// Filter returns the capabilities for which pred is true, preserving order.
func Filter(caps []Capability, pred func(Capability) bool) []Capability {
	out := make([]Capability, 0, len(caps))
	for _, c := range caps {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
