package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/mtfsantos/task-manager/domain/task"
)

// DefaultCacheTTL is how long cached task lookups stay fresh.
const DefaultCacheTTL = 5 * time.Minute

// Cache is a Redis-backed cache for task point lookups (cache-aside).
// It is optional: a nil *Cache disables caching entirely.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache creates a new cache instance.
func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Cache) key(id string) string {
	return c.prefix + "task:" + id
}

// Get retrieves a cached task. The boolean reports a cache hit.
func (c *Cache) Get(ctx context.Context, id string, dest *domain.Task) (bool, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return true, nil
}

// Set stores a task in the cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.key(task.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Delete removes a task from the cache.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
