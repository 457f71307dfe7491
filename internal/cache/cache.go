package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ListCacheTTL = 10 * time.Minute

	KeyCategories = "categories:all"
	KeyProducts   = "products:all"
	KeyUsers      = "users:all"
	KeyCarts      = "carts:all"
)

// KeyCategoryProducts caches the products of one category.
func KeyCategoryProducts(categoryID string) string {
	return "products:category:" + categoryID
}

// Cache keeps JSON snapshots of list endpoints in Redis. A nil client makes
// every call a pass-through, so the API runs without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: ListCacheTTL}
}

// Remember returns the cached value under key, or calls load and caches its result.
// Redis failures are logged and never fail the read.
func Remember[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.rdb == nil {
		return load(ctx)
	}

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil && val != "" {
		var cached T
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("⚠️ redis get %s: %v", key, err)
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}

	data, err := json.Marshal(fresh)
	if err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("⚠️ redis set %s: %v", key, err)
		}
	}
	return fresh, nil
}

// Invalidate drops keys after a write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ redis del %v: %v", keys, err)
	}
}
