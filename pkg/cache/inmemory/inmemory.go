// Package inmemory implements the cache contract on top of
// patrickmn/go-cache: a TTL cache with periodic cleanup, suitable for
// memoization where entries age out rather than compete for capacity.
package inmemory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/userdeck/userdeck/pkg/cache"
)

// Config holds the backend tunables, in seconds.
type Config struct {
	DefaultExpiration int
	CleanupInterval   int
}

// Cache is the go-cache backed implementation.
type Cache struct {
	backend *gocache.Cache
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates an in-memory TTL cache. A nil config uses go-cache
// defaults of five minutes expiration and ten minutes cleanup.
func NewCache(cfg *Config) (*Cache, error) {
	defaultExpiration := 5 * time.Minute
	cleanupInterval := 10 * time.Minute
	if cfg != nil {
		if cfg.DefaultExpiration > 0 {
			defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
		}
		if cfg.CleanupInterval > 0 {
			cleanupInterval = time.Duration(cfg.CleanupInterval) * time.Second
		}
	}
	return &Cache{backend: gocache.New(defaultExpiration, cleanupInterval)}, nil
}

func (c *Cache) Get(_ context.Context, key string) (any, error) {
	val, found := c.backend.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

func (c *Cache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	if expiration == cache.NoExpiration {
		expiration = gocache.NoExpiration
	}
	c.backend.Set(key, value, expiration)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.backend.Delete(key)
	return nil
}

func (c *Cache) Flush(_ context.Context) error {
	c.backend.Flush()
	return nil
}

func (c *Cache) ItemCount(_ context.Context) (int, error) {
	return c.backend.ItemCount(), nil
}
