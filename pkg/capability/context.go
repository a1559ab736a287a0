package capability

import "time"

// ContextPolicy decides whether a capability may be exercised under the given
// request context (caller identity, wall clock, environment flags...).
// Policies are injected by the host; the fabric hard-codes none.
type ContextPolicy func(c Capability, ctx map[string]any) bool

// ValidateInContext applies the policy to the capability and context.
// A nil policy permits everything.
func ValidateInContext(c Capability, ctx map[string]any, policy ContextPolicy) bool {
	if policy == nil {
		return true
	}
	return policy(c, ctx)
}

// BusinessHoursPolicy is a sample policy gating a set of actions to a daily
// window. The context key "now" (time.Time) overrides the wall clock, which
// keeps the policy testable.
func BusinessHoursPolicy(openHour, closeHour int, gated ...string) ContextPolicy {
	gatedSet := make(map[string]struct{}, len(gated))
	for _, a := range gated {
		gatedSet[a] = struct{}{}
	}
	return func(c Capability, ctx map[string]any) bool {
		if _, ok := gatedSet[c.Action]; !ok {
			return true
		}
		now := time.Now()
		if v, ok := ctx["now"].(time.Time); ok {
			now = v
		}
		h := now.Hour()
		return h >= openHour && h < closeHour
	}
}
