package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/pkg/cache"
)

func setupCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(&Config{
		DefaultExpiration: 300,
		CleanupInterval:   600,
	})
	require.NoError(t, err)
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", cache.NoExpiration))

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestCache_GetMissing(t *testing.T) {
	c := setupCache(t)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestCache_Delete(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", cache.NoExpiration))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	// deleting an absent key is a no-op
	assert.NoError(t, c.Delete(ctx, "absent"))
}

func TestCache_Flush(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, cache.NoExpiration))
	require.NoError(t, c.Set(ctx, "b", 2, cache.NoExpiration))

	n, err := c.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, c.Flush(ctx))

	n, err = c.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCache_Expiration(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}
