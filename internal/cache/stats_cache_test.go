package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

func TestMemoryStatsCacheExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryStatsCache(10 * time.Second).(*memoryStatsCache)
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, domain.DashboardStats{ActiveDonors: 4}))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, got.ActiveDonors)

	now = now.Add(10 * time.Second)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStatsCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryStatsCache(time.Minute)

	require.NoError(t, c.Set(ctx, domain.DashboardStats{PendingRequests: 2}))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
