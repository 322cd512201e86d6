package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chris/tailorshop-ledger/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "test", time.Minute), mr
}

func TestFetchJSON(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return doc{Name: "rates", Count: calls}, nil
	}

	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("k"))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("k"))

	var first, second doc
	require.NoError(t, c.FetchJSON(ctx, "k", &first, loader))
	require.NoError(t, c.FetchJSON(ctx, "k", &second, loader))

	assert.Equal(t, 1, calls)
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.CacheHits.WithLabelValues("k")))
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("k")))
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("test:k"))

	mr.FastForward(2 * time.Minute)
	var third doc
	require.NoError(t, c.FetchJSON(ctx, "k", &third, loader))
	assert.Equal(t, 2, third.Count)
}

func TestInvalidate(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	var d doc
	require.NoError(t, c.FetchJSON(ctx, "k", &d, func(context.Context) (any, error) { return doc{Name: "x"}, nil }))
	require.NoError(t, c.Invalidate(ctx, "k"))

	assert.False(t, mr.Exists("test:k"))
}

func TestFetchJSONLoaderError(t *testing.T) {
	c, _ := setupCache(t)

	var d doc
	err := c.FetchJSON(context.Background(), "k", &d, func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *Cache

	var d doc
	require.NoError(t, c.FetchJSON(context.Background(), "k", &d, func(context.Context) (any, error) {
		return doc{Name: "direct"}, nil
	}))
	assert.Equal(t, "direct", d.Name)
	assert.NoError(t, c.Invalidate(context.Background(), "k"))
}

func TestRedisDownFallsBack(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	var d doc
	err := c.FetchJSON(context.Background(), "k", &d, func(context.Context) (any, error) {
		return doc{Name: "fallback"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fallback", d.Name)
}
