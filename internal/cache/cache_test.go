// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	c.Set(ctx, "key1", []byte("value1"), time.Minute)

	val, ok := c.Get(ctx, "key1")
	require.True(t, ok)
	assert.Equal(t, []byte("value1"), val)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	src := []byte("abc")
	c.Set(ctx, "k", src, time.Minute)
	src[0] = 'x'

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(0)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "short", []byte("v"), time.Second)
	_, ok := c.Get(ctx, "short")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get(ctx, "short")
	assert.False(t, ok, "entry must expire exactly at its deadline")

	assert.Equal(t, 1, c.deleteExpired())
	assert.Equal(t, int64(1), c.Stats().Evictions)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemoryCache_NonPositiveTTLIsIgnored(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	c.Set(ctx, "zero", []byte("v"), 0)
	c.Set(ctx, "neg", []byte("v"), -time.Second)

	assert.Equal(t, 0, c.Stats().CurrentSize)
	assert.Equal(t, int64(0), c.Stats().Sets)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	c.Set(ctx, "key1", []byte("v"), time.Minute)
	c.Delete(ctx, "key1")

	_, ok := c.Get(ctx, "key1")
	assert.False(t, ok)
}

func TestMemoryCache_JanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryCache(5 * time.Millisecond)
	c.Set(context.Background(), "k", []byte("v"), time.Millisecond)

	require.Eventually(t, func() bool {
		return c.Stats().CurrentSize == 0
	}, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "shared", []byte{byte(i)}, time.Minute)
				c.Get(ctx, "shared")
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1600), c.Stats().Sets)
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Delete(ctx, "k")
	assert.Equal(t, Stats{}, c.Stats())
}
