package capability

import "time"

// Temporal wraps a capability with a half-open validity window
// [ValidFrom, ValidUntil). Immutable once created.
type Temporal struct {
	Capability Capability `json:"capability"`
	ValidFrom  time.Time  `json:"valid_from"`
	ValidUntil time.Time  `json:"valid_until"`
}

// NewTemporal creates a time-bounded capability.
func NewTemporal(c Capability, from, until time.Time) Temporal {
	return Temporal{Capability: c, ValidFrom: from, ValidUntil: until}
}

// ValidAt reports whether the window covers the given instant:
// ValidFrom <= now < ValidUntil.
func (t Temporal) ValidAt(now time.Time) bool {
	return !now.Before(t.ValidFrom) && now.Before(t.ValidUntil)
}
