package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loomline/admin-api/internal/models"
)

// summaryTTL keeps the dashboard slightly stale at worst. Order writes
// invalidate the key eagerly, so the TTL is only a backstop.
const summaryTTL = 60 * time.Second

const summaryKey = "dashboard:summary"

// SummaryCache caches the dashboard summary in Redis.
type SummaryCache struct {
	redis *RedisClient
}

// NewSummaryCache creates a new SummaryCache.
func NewSummaryCache(redis *RedisClient) *SummaryCache {
	return &SummaryCache{redis: redis}
}

// Set stores the summary snapshot.
func (c *SummaryCache) Set(ctx context.Context, data *models.DashboardSummary) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal summary data: %w", err)
	}
	return c.redis.Set(ctx, summaryKey, string(jsonData), summaryTTL)
}

// Get retrieves the cached summary. Returns (nil, nil) on a cache miss.
func (c *SummaryCache) Get(ctx context.Context) (*models.DashboardSummary, error) {
	jsonData, err := c.redis.Get(ctx, summaryKey)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data models.DashboardSummary
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary data: %w", err)
	}
	return &data, nil
}

// Invalidate drops the cached summary. Called after order writes.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, summaryKey)
}
