package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CatalogTTL bounds staleness of adventure reads; writes also invalidate.
	CatalogTTL = 5 * time.Minute
	// IntentStatusTTL matches the frontend's 5-second polling interval.
	IntentStatusTTL = 5 * time.Second
)

// Cache is a best-effort read cache over Redis. Every operation degrades to
// a miss on error; callers never see cache failures.
type Cache struct {
	client *redis.Client
}

// New wraps the redis client. A nil client disables caching entirely, which
// lets the server run when Redis is down.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func AdventureKey(id uuid.UUID) string {
	return "adventures:id:" + id.String()
}

func AdventureListKey(category, difficulty, location string, offset, limit int) string {
	return fmt.Sprintf("adventures:list:%s:%s:%s:%d:%d", category, difficulty, location, offset, limit)
}

func IntentStatusKey(id uuid.UUID) string {
	return "intents:status:" + id.String()
}

// Get unmarshals the cached value into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("cache unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

// DeletePattern drops every key matching the pattern. Used to invalidate the
// catalog listings after an admin write, where the exact key set is unknown.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) {
	if c.client == nil {
		return
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		slog.Warn("cache scan failed", "pattern", pattern, "error", err)
		return
	}
	if len(keys) > 0 {
		c.Delete(ctx, keys...)
	}
}
