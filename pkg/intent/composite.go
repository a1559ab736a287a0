package intent

// Strategy names a composition policy for a group of intents.
type Strategy string

const (
	Sequential  Strategy = "sequential"
	Parallel    Strategy = "parallel"
	Conditional Strategy = "conditional"
	Pipeline    Strategy = "pipeline"
	FanOut      Strategy = "fan_out"
)

// Composite groups intents under a strategy. It does not own its sub-intents;
// the same intent value may appear in several composites.
type Composite struct {
	Intents  []Intent       `json:"intents"`
	Strategy Strategy       `json:"strategy"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewComposite creates a composite and stamps the composite metadata flag.
func NewComposite(intents []Intent, strategy Strategy) Composite {
	return Composite{
		Intents:  intents,
		Strategy: strategy,
		Metadata: map[string]any{MetaComposite: true},
	}
}
