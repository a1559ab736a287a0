package discovery

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/aretw0/mycelium/pkg/ports"
)

// Pattern describes desired component attributes. The zero value of each
// field is a wildcard; a component matches iff every non-zero field matches.
type Pattern struct {
	// Name must be a substring of the component ID.
	Name string
	// Type must equal the component type exactly.
	Type string
	// Version must equal the declared version exactly.
	Version string
	// Health must equal the component's current health.
	Health ports.Health
	// Capabilities must each be implied by some provided capability.
	Capabilities []capability.Capability
	// Tags must all be present on the component.
	Tags []string
}

// Match is a record annotated with its score for the queried pattern.
type Match struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
}

// Find returns every component matching the pattern, sorted by descending
// score. Health is consulted for every candidate, through the TTL cache, since
// scoring always applies the health bonus; on a cold cache this costs one
// probe per component.
func (r *Registry) Find(pattern Pattern) []Match {
	records := r.List()
	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		health := r.Health(rec.ID)
		if !r.matches(rec, pattern, health) {
			continue
		}
		matches = append(matches, Match{
			Record: rec,
			Score:  r.Score(rec, pattern, health),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

func (r *Registry) matches(rec Record, pattern Pattern, health ports.Health) bool {
	if pattern.Name != "" && !strings.Contains(rec.ID, pattern.Name) {
		return false
	}
	if pattern.Type != "" && rec.Metadata.Type != pattern.Type {
		return false
	}
	if pattern.Version != "" && rec.Metadata.Version != pattern.Version {
		return false
	}
	if pattern.Health != "" && health != pattern.Health {
		return false
	}
	if len(pattern.Capabilities) > 0 &&
		!r.lattice.ValidateAll(pattern.Capabilities, rec.Metadata.Capabilities) {
		return false
	}
	for _, tag := range pattern.Tags {
		if !containsString(rec.Metadata.Tags, tag) {
			return false
		}
	}
	return true
}

// Score rates how well a record fits a pattern. Base 1.0; exact type match
// +0.5; a satisfied capability filter +1.0 (an unsatisfied one -0.5); health
// bonus healthy +0.3, degraded 0, unhealthy -1.0, unknown -0.2; version bonus
// major*0.1 + minor*0.01 + patch*0.001 so newer releases edge out older ones.
func (r *Registry) Score(rec Record, pattern Pattern, health ports.Health) float64 {
	score := 1.0

	if pattern.Type != "" && rec.Metadata.Type == pattern.Type {
		score += 0.5
	}

	if len(pattern.Capabilities) > 0 {
		if r.lattice.ValidateAll(pattern.Capabilities, rec.Metadata.Capabilities) {
			score += 1.0
		} else {
			score -= 0.5
		}
	}

	switch health {
	case ports.HealthHealthy:
		score += 0.3
	case ports.HealthDegraded:
		// neutral
	case ports.HealthUnhealthy:
		score -= 1.0
	default:
		score -= 0.2
	}

	if v, err := semver.NewVersion(rec.Metadata.Version); err == nil {
		score += float64(v.Major())*0.1 + float64(v.Minor())*0.01 + float64(v.Patch())*0.001
	}

	return score
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
