package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"os-help-bot/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ResultCache stores retrieval results by query. Misses and store errors are
// never fatal to a retrieval.
type ResultCache interface {
	Get(ctx context.Context, query string, topK int) (Result, bool)
	Set(ctx context.Context, query string, topK int, result Result, ttl time.Duration)
}

const cacheKeyPrefix = "oshelp:search:"

// RedisCache keeps Results as JSON in Redis.
type RedisCache struct {
	rdb    *redis.Client
	logger logger.ILogger
}

func NewRedisCache(rdb *redis.Client, logger logger.ILogger) *RedisCache {
	return &RedisCache{rdb: rdb, logger: logger}
}

func cacheKey(query string, topK int) string {
	return fmt.Sprintf("%s%d:%s", cacheKeyPrefix, topK, strings.ToLower(strings.TrimSpace(query)))
}

func (c *RedisCache) Get(ctx context.Context, query string, topK int) (Result, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(query, topK)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("SEARCH", "Cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return Result{}, false
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.Warn("SEARCH", "Cache entry corrupt", map[string]interface{}{"error": err.Error()})
		return Result{}, false
	}
	return result, true
}

// Set skips empty results so a transient search outage isn't remembered.
func (c *RedisCache) Set(ctx context.Context, query string, topK int, result Result, ttl time.Duration) {
	if result.Empty() {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(query, topK), data, ttl).Err(); err != nil {
		c.logger.Warn("SEARCH", "Cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
