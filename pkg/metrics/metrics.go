// Package metrics wraps a metricz registry with key tracking so callers can
// export a read-only snapshot of every counter and the timing stats of
// every observed operation.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/zoobzio/metricz"
)

// TimingStats summarizes the observations recorded for one operation.
type TimingStats struct {
	Count int64
	Total time.Duration
	Avg   time.Duration
}

// Registry is a per-component metrics registry. Each store owns its own
// instance; there is no process-wide registry.
type Registry struct {
	reg *metricz.Registry

	mu       sync.RWMutex
	counters []metricz.Key
	timers   []metricz.Key
	known    map[metricz.Key]struct{}
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		reg:   metricz.New(),
		known: make(map[metricz.Key]struct{}),
	}
}

func (r *Registry) counter(key metricz.Key) metricz.Counter {
	r.mu.Lock()
	if _, ok := r.known[key]; !ok {
		r.known[key] = struct{}{}
		r.counters = append(r.counters, key)
	}
	r.mu.Unlock()
	return r.reg.Counter(key)
}

func (r *Registry) timer(key metricz.Key) metricz.Timer {
	r.mu.Lock()
	if _, ok := r.known[key]; !ok {
		r.known[key] = struct{}{}
		r.timers = append(r.timers, key)
	}
	r.mu.Unlock()
	return r.reg.Timer(key)
}

// Inc increments the named counter, registering it on first use.
func (r *Registry) Inc(name string) {
	r.counter(metricz.Key(name)).Inc()
}

// Add increments the named counter by n. Batch-sized observations such as
// "records loaded" go through here.
func (r *Registry) Add(name string, n int) {
	r.counter(metricz.Key(name)).Add(float64(n))
}

// Value returns the current value of the named counter.
func (r *Registry) Value(name string) int64 {
	return int64(r.counter(metricz.Key(name)).Value())
}

// Observe records the duration of one operation under the given name and
// mirrors the running average to a gauge for external scrapers.
func (r *Registry) Observe(name string, d time.Duration) {
	key := metricz.Key(name)
	t := r.timer(key)
	t.Record(d)
	if count := t.Count(); count > 0 {
		// timer sums are kept in milliseconds
		r.reg.Gauge(key + ".avg.ms").Set(t.Sum() / float64(count))
	}
}

// Snapshot returns a copy of every counter value, keyed by counter name.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	keys := make([]metricz.Key, len(r.counters))
	copy(keys, r.counters)
	r.mu.RUnlock()

	out := make(map[string]int64, len(keys))
	for _, key := range keys {
		out[string(key)] = int64(r.reg.Counter(key).Value())
	}
	return out
}

// Timings returns the timing stats per observed operation name.
func (r *Registry) Timings() map[string]TimingStats {
	r.mu.RLock()
	keys := make([]metricz.Key, len(r.timers))
	copy(keys, r.timers)
	r.mu.RUnlock()

	out := make(map[string]TimingStats, len(keys))
	for _, key := range keys {
		t := r.reg.Timer(key)
		count := int64(t.Count())
		stats := TimingStats{
			Count: count,
			Total: time.Duration(t.Sum() * float64(time.Millisecond)),
		}
		if count > 0 {
			stats.Avg = stats.Total / time.Duration(count)
		}
		out[string(key)] = stats
	}
	return out
}

// Names returns the registered counter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.counters))
	for _, key := range r.counters {
		names = append(names, string(key))
	}
	sort.Strings(names)
	return names
}
