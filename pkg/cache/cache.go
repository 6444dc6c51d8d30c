// Package cache caches the product list in redis. A nil *Cache is a no-op,
// so callers can run without redis configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"catalog/internal/models"
)

const productListKey = "catalog:products"

// Cache wraps the redis client.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis and verifies the connection.
func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Cache{client: client, ttl: 5 * time.Minute}, nil
}

// GetProducts returns the cached product list, or (nil, false) on a miss.
func (c *Cache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(payload), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts stores the product list.
func (c *Cache) SetProducts(ctx context.Context, products []models.Product) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products for cache: %w", err)
	}
	return c.client.Set(ctx, productListKey, payload, c.ttl).Err()
}

// InvalidateProducts drops the cached list after any mutation.
func (c *Cache) InvalidateProducts(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, productListKey).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
