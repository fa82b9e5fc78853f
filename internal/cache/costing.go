package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stitchworks/stitcherp/internal/config"
	"github.com/stitchworks/stitcherp/internal/costing"
)

const costingKeyPrefix = "costing:sku:"

// BOMCostCache caches BOM cost rollups per SKU. Writes to materials or BOM
// lines must invalidate the affected SKUs.
type BOMCostCache interface {
	Get(ctx context.Context, skuCode string) (*costing.BOMCostSummary, bool, error)
	Set(ctx context.Context, skuCode string, summary *costing.BOMCostSummary) error
	Invalidate(ctx context.Context, skuCodes ...string) error
}

type redisBOMCostCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopBOMCostCache struct{}

func NewBOMCostCache(cfg config.CacheConfig) (BOMCostCache, error) {
	if !cfg.Enabled {
		return &noopBOMCostCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisBOMCostCache{client: client, ttl: ttl}, nil
}

func NewNoopBOMCostCache() BOMCostCache {
	return &noopBOMCostCache{}
}

func (c *redisBOMCostCache) Get(ctx context.Context, skuCode string) (*costing.BOMCostSummary, bool, error) {
	payload, err := c.client.Get(ctx, costingKeyPrefix+skuCode).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary costing.BOMCostSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode costing cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisBOMCostCache) Set(ctx context.Context, skuCode string, summary *costing.BOMCostSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode costing cache: %w", err)
	}

	if err := c.client.Set(ctx, costingKeyPrefix+skuCode, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisBOMCostCache) Invalidate(ctx context.Context, skuCodes ...string) error {
	if len(skuCodes) == 0 {
		return nil
	}

	keys := make([]string, len(skuCodes))
	for i, code := range skuCodes {
		keys[i] = costingKeyPrefix + code
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func (c *noopBOMCostCache) Get(ctx context.Context, skuCode string) (*costing.BOMCostSummary, bool, error) {
	return nil, false, nil
}

func (c *noopBOMCostCache) Set(ctx context.Context, skuCode string, summary *costing.BOMCostSummary) error {
	return nil
}

func (c *noopBOMCostCache) Invalidate(ctx context.Context, skuCodes ...string) error {
	return nil
}
