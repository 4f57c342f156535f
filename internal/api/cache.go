package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshKey = "jobs:last_refresh"
	cacheTTL   = time.Hour
)

// Cache memoizes dashboard query responses in Redis, keyed by the query
// plus the last-refresh timestamp the loader bumps after each batch.
// Cached entries therefore invalidate themselves whenever new data lands,
// without any explicit purge. A nil client disables caching entirely.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Touch records that the persisted listing set changed. Called by the
// loader after a successful batch.
func (c *Cache) Touch(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, refreshKey, time.Now().UnixNano(), 0).Err()
}

// Get returns the cached payload for a query, or ok=false on a miss or
// any Redis hiccup — the caller then falls through to Postgres.
func (c *Cache) Get(ctx context.Context, query string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	payload, err := c.rdb.Get(ctx, c.key(ctx, query)).Result()
	if err != nil {
		return "", false
	}
	return payload, true
}

// Set stores a query payload under the current refresh generation.
func (c *Cache) Set(ctx context.Context, query, payload string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(ctx, query), payload, cacheTTL).Err(); err != nil {
		// Caching is best-effort; the source of truth is Postgres.
		return
	}
}

func (c *Cache) key(ctx context.Context, query string) string {
	gen, err := c.rdb.Get(ctx, refreshKey).Result()
	if err != nil {
		gen = "0"
	}
	return fmt.Sprintf("dashboard:%s:%s", gen, query)
}
