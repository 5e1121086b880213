package cache

import (
	"context"
	"encoding/json"
	"time"

	"quicknotes-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a strictly best-effort layer: every failure degrades to a miss or
// a no-op so the system stays correct with the cache entirely unavailable.
type Cache interface {
	// Get unmarshals the cached value into dest and reports a hit.
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// DeletePattern removes every key matching a glob pattern, e.g. an
	// owner namespace prefix like "notes:<id>:*".
	DeletePattern(ctx context.Context, pattern string)
	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	log    logger.ILogger
}

func NewRedisCache(client *redis.Client, log logger.ILogger) *RedisCache {
	return &RedisCache{
		client: client,
		log:    log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache", "Cache get error", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("cache", "Cache decode error", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache", "Cache encode error", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache", "Cache set error", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache", "Cache delete error", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.log.Warn("cache", "Cache pattern scan error", map[string]interface{}{"pattern": pattern, "error": err.Error()})
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.log.Warn("cache", "Cache pattern delete error", map[string]interface{}{"pattern": pattern, "error": err.Error()})
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
