package intent

import (
	"maps"

	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/google/uuid"
)

// Metadata keys recognized across the fabric.
const (
	MetaDynamic     = "dynamic"
	MetaComposite   = "composite"
	MetaDelegatedTo = "delegated_to"
)

// Intent is a request for effect. Treat it as immutable: use WithMetadata to
// derive variants instead of mutating the maps in place.
type Intent struct {
	ID           string                  `json:"id"`
	Type         string                  `json:"type"`
	Payload      map[string]any          `json:"payload,omitempty"`
	Capabilities []capability.Capability `json:"capabilities,omitempty"`
	Metadata     map[string]any          `json:"metadata,omitempty"`
}

// New creates an intent with a fresh unique ID.
func New(intentType string, payload map[string]any, caps []capability.Capability) Intent {
	return Intent{
		ID:           uuid.NewString(),
		Type:         intentType,
		Payload:      payload,
		Capabilities: caps,
		Metadata:     map[string]any{},
	}
}

// WithMetadata returns a copy of the intent with the key set. The metadata map
// is cloned so the original intent is untouched.
func (in Intent) WithMetadata(key string, value any) Intent {
	meta := make(map[string]any, len(in.Metadata)+1)
	maps.Copy(meta, in.Metadata)
	meta[key] = value
	in.Metadata = meta
	return in
}

// WithPayload returns a copy of the intent with the payload replaced.
func (in Intent) WithPayload(payload map[string]any) Intent {
	in.Payload = payload
	return in
}

// DelegatedTo reports the delegation target, if any.
func (in Intent) DelegatedTo() (string, bool) {
	v, ok := in.Metadata[MetaDelegatedTo].(string)
	return v, ok && v != ""
}
