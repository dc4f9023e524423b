package lru

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/pkg/cache"
)

func TestNewCache_RequiresPositiveCapacity(t *testing.T) {
	_, err := NewCache(nil)
	assert.Error(t, err)

	_, err = NewCache(&Config{MaxEntries: 0})
	assert.Error(t, err)
}

func TestCache_SetGet(t *testing.T) {
	c, err := NewCache(&Config{MaxEntries: 4})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", cache.NoExpiration))

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	_, err = c.Get(ctx, "absent")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c, err := NewCache(&Config{
		MaxEntries: 2,
		OnEvict: func(key string) {
			evicted = append(evicted, key)
		},
	})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, cache.NoExpiration))
	require.NoError(t, c.Set(ctx, "b", 2, cache.NoExpiration))

	// touch "a" so "b" becomes the eviction candidate
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", 3, cache.NoExpiration))

	assert.Equal(t, []string{"b"}, evicted)

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	_, err = c.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestCache_CapacityBound(t *testing.T) {
	c, err := NewCache(&Config{MaxEntries: 3})
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), i, cache.NoExpiration))
	}

	n, err := c.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCache_Flush(t *testing.T) {
	c, err := NewCache(&Config{MaxEntries: 4})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, cache.NoExpiration))
	require.NoError(t, c.Flush(ctx))

	n, err := c.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
