// Package cache is a small JSON read-through cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client and checks that it answers.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return client, nil
}

// Cache stores JSON documents under a key prefix with a fixed TTL. A nil
// Cache, or one without a client, calls straight through to the loader.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a Cache.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}

// FetchJSON decodes the cached value at key into dest, or runs loader,
// stores its result and decodes that. Redis failures fall back to the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}

	if c != nil && c.client != nil {
		raw, err := c.client.Get(ctx, c.key(key)).Bytes()
		switch {
		case err == nil:
			if jerr := json.Unmarshal(raw, dest); jerr == nil {
				metrics.CacheHits.WithLabelValues(key).Inc()
				return nil
			}
			slog.Warn("discarding undecodable cache entry", "key", c.key(key))
		case !errors.Is(err, redis.Nil):
			slog.Warn("cache read failed", "key", c.key(key), "error", err)
		}
	}

	metrics.CacheMisses.WithLabelValues(key).Inc()
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}

	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
			slog.Warn("cache write failed", "key", c.key(key), "error", err)
		}
	}

	return json.Unmarshal(raw, dest)
}

// Invalidate removes keys so the next read goes to the loader.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}
	return nil
}
