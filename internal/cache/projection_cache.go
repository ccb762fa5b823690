package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const projectionKeyPrefix = "candidates:projection"

// ProjectionCache memoizes projected id sequences in Redis. Keys embed the
// store epoch and revision, so neither a mutation nor another process sharing
// the same Redis can serve a stale projection.
type ProjectionCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewProjectionCache builds a cache over client. A nil client yields a nil cache.
func NewProjectionCache(r *Redis, ttl time.Duration, logger *zap.Logger) *ProjectionCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &ProjectionCache{client: r.Client, ttl: ttl, logger: logger}
}

// ProjectionKey identifies one projection of one revision of one store epoch.
func ProjectionKey(epoch string, revision uint64, stateKey string) string {
	return fmt.Sprintf("%s:%s:%d:%s", projectionKeyPrefix, epoch, revision, stateKey)
}

// Get returns the cached ids for key. Misses and Redis errors both report false.
func (c *ProjectionCache) Get(ctx context.Context, key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("projection cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		c.logger.Warn("projection cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return ids, true
}

// Set stores ids under key.
func (c *ProjectionCache) Set(ctx context.Context, key string, ids []string) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("projection cache write failed", zap.String("key", key), zap.Error(err))
	}
}
