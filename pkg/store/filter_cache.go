package store

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/userdeck/userdeck/pkg/cache"
	"github.com/userdeck/userdeck/pkg/cache/lru"
	"github.com/userdeck/userdeck/pkg/metrics"
	"github.com/userdeck/userdeck/pkg/types"
)

// Counter names incremented by the filter cache.
const (
	MetricCacheHits      = "cache.hits.total"
	MetricCacheMisses    = "cache.misses.total"
	MetricCacheEvictions = "cache.evictions.total"
)

// filterCache memoizes filter results keyed by store version, strategy and
// criteria fingerprint. Because the version is part of the key, an entry
// computed before a mutation can never be served after it; stale entries
// simply age out of the LRU. Concurrent misses on the same key compute the
// result once via singleflight.
type filterCache struct {
	backend cache.Cache
	group   singleflight.Group
	reg     *metrics.Registry
}

func newFilterCache(maxEntries int, reg *metrics.Registry) (*filterCache, error) {
	backend, err := lru.NewCache(&lru.Config{
		MaxEntries: maxEntries,
		OnEvict: func(string) {
			reg.Inc(MetricCacheEvictions)
		},
	})
	if err != nil {
		return nil, err
	}
	return &filterCache{backend: backend, reg: reg}, nil
}

// fetch returns the cached result for key, computing and storing it on a
// miss. Callers always receive their own copy of the records.
func (fc *filterCache) fetch(ctx context.Context, key string, compute func() []types.User) []types.User {
	if val, err := fc.backend.Get(ctx, key); err == nil {
		if cached, ok := val.([]types.User); ok {
			fc.reg.Inc(MetricCacheHits)
			return types.CloneAll(cached)
		}
	}

	fc.reg.Inc(MetricCacheMisses)
	val, _, _ := fc.group.Do(key, func() (any, error) {
		result := compute()
		_ = fc.backend.Set(ctx, key, result, cache.NoExpiration)
		return result, nil
	})

	return types.CloneAll(val.([]types.User))
}
