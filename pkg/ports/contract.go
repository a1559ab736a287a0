package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHealthCacheContract verifies that a HealthCache implementation adheres to
// the interface contract. Adapter test suites call this against their backend.
func RunHealthCacheContract(t *testing.T, cache HealthCache) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, "comp-a", HealthEntry{Health: HealthHealthy, CheckedAt: now})
		require.NoError(t, err)

		entry, ok, err := cache.Get(ctx, "comp-a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, HealthHealthy, entry.Health)
		assert.WithinDuration(t, now, entry.CheckedAt, time.Second)
	})

	t.Run("Get miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "never-registered")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "comp-b", HealthEntry{Health: HealthDegraded, CheckedAt: now}))
		require.NoError(t, cache.Delete(ctx, "comp-b"))

		_, ok, err := cache.Get(ctx, "comp-b")
		require.NoError(t, err)
		assert.False(t, ok, "Get after Delete should miss")
	})

	t.Run("Purge evicts stale entries only", func(t *testing.T) {
		stale := HealthEntry{Health: HealthHealthy, CheckedAt: now.Add(-time.Hour)}
		fresh := HealthEntry{Health: HealthHealthy, CheckedAt: now}
		require.NoError(t, cache.Put(ctx, "stale", stale))
		require.NoError(t, cache.Put(ctx, "fresh", fresh))

		require.NoError(t, cache.Purge(ctx, now.Add(-time.Minute)))

		_, ok, err := cache.Get(ctx, "stale")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = cache.Get(ctx, "fresh")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Replace swaps content", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "old", HealthEntry{Health: HealthHealthy, CheckedAt: now}))

		err := cache.Replace(ctx, map[string]HealthEntry{
			"new": {Health: HealthUnhealthy, CheckedAt: now},
		})
		require.NoError(t, err)

		_, ok, err := cache.Get(ctx, "old")
		require.NoError(t, err)
		assert.False(t, ok, "Replace should drop entries absent from the snapshot")

		entry, ok, err := cache.Get(ctx, "new")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, HealthUnhealthy, entry.Health)
	})
}
