// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, newRedisCache(client, "statusbot:", zerolog.Nop())
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "listing", []byte(`[{"id":1}]`), time.Minute)

	val, ok := c.Get(ctx, "listing")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(val))

	raw, err := mr.Get("statusbot:listing")
	require.NoError(t, err, "key must be stored under the prefix")
	assert.Equal(t, `[{"id":1}]`, raw)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestRedisCache_GetMissing(t *testing.T) {
	_, c := setupMiniRedis(t)

	_, ok := c.Get(context.Background(), "nope")
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestRedisCache_TTL(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "ttl", []byte("v"), 10*time.Second)
	assert.Equal(t, 10*time.Second, mr.TTL("statusbot:ttl"))

	mr.FastForward(11 * time.Second)
	_, ok := c.Get(ctx, "ttl")
	assert.False(t, ok)
}

func TestRedisCache_NonPositiveTTLIsIgnored(t *testing.T) {
	mr, c := setupMiniRedis(t)

	c.Set(context.Background(), "k", []byte("v"), 0)
	assert.False(t, mr.Exists("statusbot:k"))
}

func TestRedisCache_Delete(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	assert.False(t, mr.Exists("statusbot:k"))
}

func TestRedisCache_ServerDownDegradesToMiss(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	mr.Close()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Stats().Sets)
	assert.Error(t, c.HealthCheck(ctx))
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}
