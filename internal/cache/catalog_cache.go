package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"shopassist/internal/model"
)

// CatalogCache keeps a Redis snapshot of a store's catalog items so chat
// turns skip the full-table read. A short-lived dirty marker is set while an
// index run rewrites the store, keeping stale snapshots out of the cache.
type CatalogCache struct {
	client         *redisv9.Client
	catalogTTL     time.Duration
	dirtyMarkerTTL time.Duration
}

// cachedItem carries the embedding explicitly; the model hides it from API
// JSON but the cache must round-trip it.
type cachedItem struct {
	model.CatalogItem
	Embedding string `json:"embedding"`
}

func NewCatalogCache(client *redisv9.Client, catalogTTL, dirtyMarkerTTL time.Duration) *CatalogCache {
	if catalogTTL <= 0 {
		catalogTTL = 5 * time.Minute
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 10 * time.Second
	}
	return &CatalogCache{
		client:         client,
		catalogTTL:     catalogTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *CatalogCache) GetItems(ctx context.Context, storeID uint) ([]model.CatalogItem, bool, error) {
	raw, err := c.client.Get(ctx, c.itemsKey(storeID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get catalog failed: %w", err)
	}

	var cached []cachedItem
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached catalog failed: %w", err)
	}
	items := make([]model.CatalogItem, len(cached))
	for i := range cached {
		items[i] = cached[i].CatalogItem
		items[i].Embedding = cached[i].Embedding
	}
	return items, true, nil
}

func (c *CatalogCache) SetItems(ctx context.Context, storeID uint, items []model.CatalogItem) error {
	cached := make([]cachedItem, len(items))
	for i := range items {
		cached[i] = cachedItem{CatalogItem: items[i], Embedding: items[i].Embedding}
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal catalog cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.itemsKey(storeID), payload, c.catalogTTL).Err(); err != nil {
		return fmt.Errorf("redis set catalog failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) DeleteItems(ctx context.Context, storeID uint) error {
	if err := c.client.Del(ctx, c.itemsKey(storeID)).Err(); err != nil {
		return fmt.Errorf("redis delete catalog failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) MarkDirty(ctx context.Context, storeID uint) error {
	if err := c.client.Set(ctx, c.dirtyKey(storeID), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) IsDirty(ctx context.Context, storeID uint) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey(storeID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *CatalogCache) itemsKey(storeID uint) string {
	return fmt.Sprintf("catalog:items:%d", storeID)
}

func (c *CatalogCache) dirtyKey(storeID uint) string {
	return fmt.Sprintf("catalog:dirty:%d", storeID)
}
