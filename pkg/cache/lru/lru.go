// Package lru implements the cache contract on top of
// hashicorp/golang-lru: a capacity-bounded cache that discards the
// least-recently-used entry on overflow. Expiration arguments are ignored;
// entries live until evicted or flushed.
package lru

import (
	"context"
	"fmt"
	"time"

	hlru "github.com/hashicorp/golang-lru/v2"

	"github.com/userdeck/userdeck/pkg/cache"
)

// Config holds the backend tunables.
type Config struct {
	MaxEntries int

	// OnEvict, when set, is called for every entry discarded by the LRU
	// policy. It must not call back into the cache.
	OnEvict func(key string)
}

// Cache is the golang-lru backed implementation.
type Cache struct {
	backend *hlru.Cache[string, any]
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates a bounded LRU cache.
func NewCache(cfg *Config) (*Cache, error) {
	if cfg == nil || cfg.MaxEntries <= 0 {
		return nil, fmt.Errorf("lru cache requires a positive max entries, got %+v", cfg)
	}

	var backend *hlru.Cache[string, any]
	var err error
	if cfg.OnEvict != nil {
		onEvict := cfg.OnEvict
		backend, err = hlru.NewWithEvict[string, any](cfg.MaxEntries, func(key string, _ any) {
			onEvict(key)
		})
	} else {
		backend, err = hlru.New[string, any](cfg.MaxEntries)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create lru backend: %w", err)
	}
	return &Cache{backend: backend}, nil
}

func (c *Cache) Get(_ context.Context, key string) (any, error) {
	val, found := c.backend.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

func (c *Cache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.backend.Add(key, value)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.backend.Remove(key)
	return nil
}

func (c *Cache) Flush(_ context.Context) error {
	c.backend.Purge()
	return nil
}

func (c *Cache) ItemCount(_ context.Context) (int, error) {
	return c.backend.Len(), nil
}
