// Package memory provides in-process adapter implementations.
// The HealthCache here is the default backend for a single-runtime registry.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/aretw0/mycelium/pkg/ports"
)

// HealthCache implements ports.HealthCache with a mutex-guarded map.
type HealthCache struct {
	mu      sync.RWMutex
	entries map[string]ports.HealthEntry
}

// NewHealthCache creates an empty cache.
func NewHealthCache() *HealthCache {
	return &HealthCache{entries: make(map[string]ports.HealthEntry)}
}

// Get implements ports.HealthCache.
func (c *HealthCache) Get(_ context.Context, id string) (ports.HealthEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	return entry, ok, nil
}

// Put implements ports.HealthCache.
func (c *HealthCache) Put(_ context.Context, id string, entry ports.HealthEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = entry
	return nil
}

// Delete implements ports.HealthCache.
func (c *HealthCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

// Purge implements ports.HealthCache.
func (c *HealthCache) Purge(_ context.Context, cutoff time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, entry := range c.entries {
		if entry.CheckedAt.Before(cutoff) {
			delete(c.entries, id)
		}
	}
	return nil
}

// Replace implements ports.HealthCache.
func (c *HealthCache) Replace(_ context.Context, entries map[string]ports.HealthEntry) error {
	fresh := make(map[string]ports.HealthEntry, len(entries))
	maps.Copy(fresh, entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = fresh
	return nil
}
