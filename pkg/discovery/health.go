package discovery

import (
	"context"
	"time"

	"github.com/aretw0/mycelium/pkg/ports"
)

// Health returns the component's current health, consulting the TTL cache
// first. On a miss or a stale entry the component is probed again. Unknown
// IDs report HealthUnknown.
func (r *Registry) Health(id string) ports.Health {
	rec, ok := r.Get(id)
	if !ok {
		return ports.HealthUnknown
	}

	if entry, hit, err := r.cache.Get(r.ctx, id); err == nil && hit {
		if time.Since(entry.CheckedAt) < r.ttl {
			return entry.Health
		}
	} else if err != nil {
		r.logger.Warn("health cache read failed", "id", id, "err", err)
	}

	health := r.probe(rec)
	if err := r.cache.Put(r.ctx, id, ports.HealthEntry{Health: health, CheckedAt: time.Now()}); err != nil {
		r.logger.Warn("health cache write failed", "id", id, "err", err)
	}
	return health
}

// probe determines a component's health. Components implementing
// ports.HealthProbe are asked directly under the probe timeout; otherwise
// health degrades to a liveness check of the handle.
func (r *Registry) probe(rec Record) ports.Health {
	var health ports.Health
	switch probe := rec.Handle.(type) {
	case ports.HealthProbe:
		ctx, cancel := context.WithTimeout(r.ctx, r.probeTimeout)
		health = probe.CheckHealth(ctx)
		cancel()
	default:
		if rec.Handle != nil {
			health = ports.HealthHealthy
		} else {
			health = ports.HealthUnknown
		}
	}
	r.metrics.ObserveProbe(string(health))
	return health
}

// RefreshHealthCache reprobes every registered component and swaps the cache
// snapshot atomically.
func (r *Registry) RefreshHealthCache() error {
	records := r.List()
	now := time.Now()
	entries := make(map[string]ports.HealthEntry, len(records))
	for _, rec := range records {
		entries[rec.ID] = ports.HealthEntry{Health: r.probe(rec), CheckedAt: now}
	}
	return r.cache.Replace(r.ctx, entries)
}

// janitor periodically evicts health entries older than the TTL. It
// reschedules itself until the registry closes.
func (r *Registry) janitor() {
	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := r.cache.Purge(r.ctx, time.Now().Add(-r.ttl)); err != nil {
				r.logger.Warn("health cache purge failed", "err", err)
			}
		case <-r.ctx.Done():
			return
		}
	}
}
