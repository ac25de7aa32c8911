// Package cache stores the most recent dashboard stats snapshot.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// StatsKey is the Redis key holding the serialized snapshot.
const StatsKey = "lifematch:dashboard:stats"

// StatsCache holds a dashboard stats snapshot for a bounded time.
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, bool, error)
	Set(ctx context.Context, stats domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache returns a cache backed by a single Redis key.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &redisStatsCache{client: client, ttl: ttl}
}

func (c *redisStatsCache) Get(ctx context.Context) (*domain.DashboardStats, bool, error) {
	raw, err := c.client.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, true, nil
}

func (c *redisStatsCache) Set(ctx context.Context, stats domain.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, StatsKey, raw, c.ttl).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, StatsKey).Err()
}

type memoryStatsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	stats   *domain.DashboardStats
	expires time.Time
}

// NewMemoryStatsCache returns a process-local cache used when Redis is not configured.
func NewMemoryStatsCache(ttl time.Duration) StatsCache {
	return &memoryStatsCache{ttl: ttl, now: time.Now}
}

func (c *memoryStatsCache) Get(_ context.Context) (*domain.DashboardStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	stats := *c.stats
	return &stats, true, nil
}

func (c *memoryStatsCache) Set(_ context.Context, stats domain.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = &stats
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *memoryStatsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	return nil
}
