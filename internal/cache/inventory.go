package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andinalabs/cataloghub/internal/domain/product"
)

// InventoryCache is a read-through cache for inventory listings. Redis being
// down only costs latency: every path fails open to the database.
type InventoryCache struct {
	client *Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewInventoryCache(client *Client, ttl time.Duration, log *slog.Logger) *InventoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &InventoryCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached listing for a tenant (empty nit means the whole
// catalog) and whether it was present.
func (c *InventoryCache) Get(ctx context.Context, nit string) ([]product.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Raw().Get(ctx, InventoryKey(nit)).Bytes()

	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("inventory cache read failed", "err", err)
		}
		return nil, false
	}

	var list []product.Product

	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn("inventory cache entry corrupt, dropping", "key", InventoryKey(nit), "err", err)
		_ = c.client.Raw().Del(ctx, InventoryKey(nit)).Err()
		return nil, false
	}

	return list, true
}

func (c *InventoryCache) Set(ctx context.Context, nit string, list []product.Product) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(list)

	if err != nil {
		return
	}

	if err := c.client.Raw().Set(ctx, InventoryKey(nit), raw, c.ttl).Err(); err != nil {
		c.log.Warn("inventory cache write failed", "err", err)
	}
}

// Invalidate drops the tenant's listing and the catalog-wide one, which any
// product mutation also staled.
func (c *InventoryCache) Invalidate(ctx context.Context, nit string) {
	if c == nil || c.client == nil {
		return
	}

	keys := []string{InventoryKey("")}

	if nit != "" {
		keys = append(keys, InventoryKey(nit))
	}

	if err := c.client.Raw().Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("inventory cache invalidation failed", "err", err)
	}
}
