// Package redis provides a Redis-backed ports.HealthCache.
// Entries carry a TTL at the backend so a crashed process never leaves
// immortal health observations behind. The registry of record stays
// in-process; Redis only caches probe results.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/mycelium/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// HealthCache implements ports.HealthCache on top of Redis.
type HealthCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the cache.
type Option func(*HealthCache)

// WithPrefix sets the key prefix for entries.
func WithPrefix(prefix string) Option {
	return func(c *HealthCache) {
		c.prefix = prefix
	}
}

// WithTTL sets the backend expiry applied to every entry.
// Zero disables backend expiry; staleness is then enforced by Purge alone.
func WithTTL(ttl time.Duration) Option {
	return func(c *HealthCache) {
		c.ttl = ttl
	}
}

// New creates a cache with its own client.
func New(address, password string, db int, opts ...Option) *HealthCache {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *HealthCache {
	c := &HealthCache{
		client: client,
		prefix: "mycelium:health:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HealthCache) key(id string) string {
	return c.prefix + id
}

// Get implements ports.HealthCache.
func (c *HealthCache) Get(ctx context.Context, id string) (ports.HealthEntry, bool, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == backend.Nil {
		return ports.HealthEntry{}, false, nil
	}
	if err != nil {
		return ports.HealthEntry{}, false, fmt.Errorf("redis get: %w", err)
	}
	var entry ports.HealthEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ports.HealthEntry{}, false, fmt.Errorf("unmarshal health entry: %w", err)
	}
	return entry, true, nil
}

// Put implements ports.HealthCache.
func (c *HealthCache) Put(ctx context.Context, id string, entry ports.HealthEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal health entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements ports.HealthCache.
func (c *HealthCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Purge implements ports.HealthCache. It scans the prefix and drops entries
// checked before the cutoff.
func (c *HealthCache) Purge(ctx context.Context, cutoff time.Time) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := c.client.Get(ctx, key).Bytes()
		if err == backend.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis get during purge: %w", err)
		}
		var entry ports.HealthEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Unreadable entries are stale by definition.
			_ = c.client.Del(ctx, key).Err()
			continue
		}
		if entry.CheckedAt.Before(cutoff) {
			if err := c.client.Del(ctx, key).Err(); err != nil {
				return fmt.Errorf("redis del during purge: %w", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

// Replace implements ports.HealthCache. Existing entries under the prefix are
// dropped and the snapshot written in a single pipeline.
func (c *HealthCache) Replace(ctx context.Context, entries map[string]ports.HealthEntry) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var stale []string
	for iter.Next(ctx) {
		stale = append(stale, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	pipe := c.client.TxPipeline()
	if len(stale) > 0 {
		pipe.Del(ctx, stale...)
	}
	for id, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal health entry: %w", err)
		}
		pipe.Set(ctx, c.key(id), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}
