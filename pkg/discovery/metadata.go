package discovery

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// DefaultVersion is assumed when a component declares no version.
const DefaultVersion = "1.0.0"

// Metadata describes a registered component.
type Metadata struct {
	Type         string                  `mapstructure:"type" json:"type"`
	Version      string                  `mapstructure:"version" json:"version"`
	Capabilities []capability.Capability `mapstructure:"capabilities" json:"capabilities,omitempty"`
	Dependencies []string                `mapstructure:"dependencies" json:"dependencies,omitempty"`
	Tags         []string                `mapstructure:"tags" json:"tags,omitempty"`
	Interface    string                  `mapstructure:"interface" json:"interface,omitempty"`
}

// Record is one registry entry. Owned exclusively by the Registry; callers
// receive copies.
type Record struct {
	ID           string        `json:"id"`
	Handle       ports.Handler `json:"-"`
	Metadata     Metadata      `json:"metadata"`
	RegisteredAt time.Time     `json:"registered_at"`
}

// deriveMetadata builds default metadata for a handle: self-description when
// the handle is Describable, otherwise the type is guessed from the ID prefix
// and the version falls back to DefaultVersion.
func deriveMetadata(id string, handle ports.Handler) Metadata {
	meta := Metadata{Version: DefaultVersion}
	if d, ok := handle.(ports.Describable); ok {
		desc := d.Describe()
		meta.Type = desc.Type
		if desc.Version != "" {
			meta.Version = desc.Version
		}
		meta.Capabilities = desc.Capabilities
		meta.Dependencies = desc.Dependencies
		meta.Tags = desc.Tags
		meta.Interface = desc.Interface
	}
	if meta.Type == "" {
		meta.Type = typeFromID(id)
	}
	return meta
}

// typeFromID guesses a component type from its naming convention:
// "file-service" -> "file".
func typeFromID(id string) string {
	for _, sep := range []string{"-", ".", "_"} {
		if idx := strings.Index(id, sep); idx > 0 {
			return id[:idx]
		}
	}
	return id
}

// mergeMetadata decodes the caller-supplied map over the base metadata.
// Keys present in the map win; absent keys keep the derived value.
func mergeMetadata(base Metadata, override map[string]any) (Metadata, error) {
	if len(override) == 0 {
		return base, nil
	}
	merged := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &merged,
		TagName:    "mapstructure",
		ZeroFields: true,
	})
	if err != nil {
		return base, fmt.Errorf("build metadata decoder: %w", err)
	}
	if err := dec.Decode(override); err != nil {
		return base, fmt.Errorf("decode metadata override: %w", err)
	}
	return merged, nil
}
