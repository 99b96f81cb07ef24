package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := New[int32, string](Config{})
	defer c.Close()

	_, ok := c.Get(ctx, 1)
	require.False(t, ok)

	c.Set(ctx, 1, "hello")
	value, ok := c.Get(ctx, 1)
	require.True(t, ok)
	require.Equal(t, "hello", value)

	c.Delete(ctx, 1)
	_, ok = c.Get(ctx, 1)
	require.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := New[int32, string](Config{DefaultTTL: 10 * time.Millisecond, CleanupInterval: time.Hour})
	defer c.Close()

	c.Set(ctx, 1, "short lived")
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, 1)
	require.False(t, ok)
}

func TestCacheEvictsAtCap(t *testing.T) {
	ctx := context.Background()
	c := New[int32, string](Config{MaxItems: 2})
	defer c.Close()

	c.Set(ctx, 1, "a")
	c.Set(ctx, 2, "b")
	c.Set(ctx, 3, "c")

	count := 0
	for _, key := range []int32{1, 2, 3} {
		if _, ok := c.Get(ctx, key); ok {
			count++
		}
	}
	require.Equal(t, 2, count)

	_, ok := c.Get(ctx, 3)
	require.True(t, ok)
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := New[int32, string](Config{})
	c.Close()
	c.Close()
}
