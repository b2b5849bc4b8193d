package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheFromClient(client)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "matches:brand-1:abc")
	assert.False(t, ok)

	c.Set(ctx, "matches:brand-1:abc", `[{"score":75}]`, time.Hour)

	value, ok := c.Get(ctx, "matches:brand-1:abc")
	require.True(t, ok)
	assert.Equal(t, `[{"score":75}]`, value)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "matches:brand-1:abc", "payload", time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "matches:brand-1:abc")
	assert.False(t, ok)
}

func TestRedisCacheInvalidatePattern(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "matches:brand-1:aaa", "x", time.Hour)
	c.Set(ctx, "matches:brand-1:bbb", "y", time.Hour)
	c.Set(ctx, "matches:brand-2:ccc", "z", time.Hour)

	c.InvalidatePattern(ctx, "matches:brand-1:*")

	_, ok := c.Get(ctx, "matches:brand-1:aaa")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "matches:brand-1:bbb")
	assert.False(t, ok)

	value, ok := c.Get(ctx, "matches:brand-2:ccc")
	require.True(t, ok)
	assert.Equal(t, "z", value)
}

func TestRedisCacheUnavailableDegradesGracefully(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Close()

	_, ok := c.Get(ctx, "matches:brand-1:abc")
	assert.False(t, ok)

	// запись и инвалидация не должны паниковать при недоступном Redis
	c.Set(ctx, "matches:brand-1:abc", "payload", time.Hour)
	c.InvalidatePattern(ctx, "matches:*")
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	c.Set(ctx, "key", "value", time.Hour)
	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}
