// Package cache provides the Redis-backed result cache for the deterministic
// analyses (score and overlap). Keys are derived from a SHA-256 of the input
// text, concurrent computations for the same text are deduplicated with
// singleflight, and any cache failure degrades to recomputing the result.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	pkgredis "github.com/textlens/textlens/pkg/redis"
)

const keyPrefix = "analysis:"

// ResultCache caches JSON-serialised analysis results in Redis.
type ResultCache struct {
	client *pkgredis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a ResultCache with the given TTL.
func New(client *pkgredis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "result-cache"),
	}
}

// GetOrCompute returns the cached result for (kind, text) or computes and
// stores it. The second return reports whether the value came from cache.
// A nil receiver always computes.
func GetOrCompute[T any](ctx context.Context, c *ResultCache, kind, text string, compute func() (T, error)) (T, bool, error) {
	if c == nil {
		result, err := compute()
		return result, false, err
	}

	key := c.buildKey(kind, text)
	if result, ok := get[T](ctx, c, key); ok {
		c.hits.Add(1)
		return result, true, nil
	}
	c.misses.Add(1)

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := get[T](ctx, c, key); ok {
			return result, nil
		}
		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return val.(T), false, nil
}

func get[T any](ctx context.Context, c *ResultCache, key string) (T, bool) {
	var result T
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return result, false
	}
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return result, false
	}
	return result, true
}

func (c *ResultCache) set(ctx context.Context, key string, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes every cached analysis result.
func (c *ResultCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating result cache: %w", err)
	}
	c.logger.Info("result cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ResultCache) buildKey(kind, text string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return fmt.Sprintf("%s%s:%x", keyPrefix, kind, hash[:16])
}
