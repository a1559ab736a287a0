package ports

import (
	"context"
	"time"
)

// Health is the reported status of a component.
type Health string

const (
	HealthHealthy   Health = "healthy"
	HealthDegraded  Health = "degraded"
	HealthUnhealthy Health = "unhealthy"
	HealthUnknown   Health = "unknown"
)

// HealthEntry is one cached health observation.
type HealthEntry struct {
	Health    Health    `json:"health"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthCache stores TTL-bounded health observations keyed by component ID.
// Implementations must be safe for concurrent use; the in-memory adapter backs
// a single registry, the Redis adapter may be shared across processes.
type HealthCache interface {
	// Get returns the cached entry for the component, if present.
	Get(ctx context.Context, id string) (HealthEntry, bool, error)

	// Put stores an observation.
	Put(ctx context.Context, id string, entry HealthEntry) error

	// Delete removes the entry for the component.
	Delete(ctx context.Context, id string) error

	// Purge evicts every entry checked before the cutoff.
	Purge(ctx context.Context, cutoff time.Time) error

	// Replace swaps the whole cache content atomically.
	Replace(ctx context.Context, entries map[string]HealthEntry) error
}
