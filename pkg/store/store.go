// Package store owns the authoritative record collection: an ordered slice
// plus an id index for O(1) lookup, guarded by a single RWMutex. All reads
// hand out copies; live references never escape.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/userdeck/userdeck/pkg/config"
	"github.com/userdeck/userdeck/pkg/filter"
	"github.com/userdeck/userdeck/pkg/format"
	"github.com/userdeck/userdeck/pkg/logger"
	"github.com/userdeck/userdeck/pkg/metrics"
	"github.com/userdeck/userdeck/pkg/types"
	"github.com/userdeck/userdeck/pkg/validation"
)

var (
	// ErrDuplicateID is returned by Add when the id is already live.
	ErrDuplicateID = errors.New("record with this id already exists")

	// ErrNotFound is returned by Update for an unknown id. Lookups signal
	// absence with a bool instead; only mutations treat it as an error.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord wraps validation failures surfaced by Add and Update.
	ErrInvalidRecord = errors.New("invalid record")
)

// Counter names incremented by the store.
const (
	MetricLoaded       = "store.records.loaded"
	MetricDuplicates   = "store.duplicates.total"
	MetricSkipped      = "store.records.skipped"
	MetricLookups      = "store.lookups.total"
	MetricLookupHits   = "store.lookup_hits.total"
	MetricLookupMisses = "store.lookup_misses.total"
	MetricAdds         = "store.adds.total"
	MetricUpdates      = "store.updates.total"
	MetricRemoves      = "store.removes.total"
	MetricGetAll       = "store.get_all.total"
	MetricFilters      = "store.filters.total"
	MetricSnapshots    = "store.snapshots.total"
	MetricRenders      = "store.renders.total"
)

// UserStore is a thread-safe, indexed record collection.
//
// Custom filter strategies passed to FilterWith run while the store lock is
// held and must not call back into the store.
type UserStore struct {
	mu sync.RWMutex

	users   []types.User
	index   map[int64]int
	version uint64

	cfg       *config.AppConfig
	validator *validation.Validator
	strategy  filter.Strategy
	formatter format.Formatter
	fcache    *filterCache
	reg       *metrics.Registry
	log       *logrus.Entry
}

// New builds a store from the given raw records. Every record is validated;
// invalid ones are skipped with a warning so one bad record never aborts
// the batch. Duplicate ids are resolved last-write-wins in place: the later
// record replaces the earlier one at its original position.
func New(ctx context.Context, records []types.Raw, cfg *config.AppConfig) (*UserStore, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := metrics.New()

	strategy, err := filter.New(cfg.DefaultStrategy, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}
	formatter, err := format.New(cfg.DefaultFormatter)
	if err != nil {
		return nil, err
	}

	s := &UserStore{
		index:     make(map[int64]int),
		cfg:       cfg,
		validator: validation.New(cfg, reg),
		strategy:  strategy,
		formatter: formatter,
		reg:       reg,
		log: logger.Logger(ctx).WithFields(logrus.Fields{
			"marker":   cfg.LogMarker,
			"store_id": uuid.NewString(),
		}),
	}

	if cfg.EnableCache {
		fc, err := newFilterCache(cfg.MaxCacheEntries, reg)
		if err != nil {
			return nil, err
		}
		s.fcache = fc
	}

	s.Load(ctx, records)
	return s, nil
}

// Load replaces the store contents with the given records, validating and
// indexing each one.
func (s *UserStore) Load(ctx context.Context, records []types.Raw) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = s.users[:0]
	s.index = make(map[int64]int, len(records))

	for i, raw := range records {
		user, err := s.validator.Validate(raw)
		if err != nil {
			s.inc(MetricSkipped)
			s.log.WithError(err).WithField("position", i).Warn("skipping invalid record")
			continue
		}

		if pos, ok := s.index[user.ID]; ok {
			// last-write-wins: replace in place, keep display position
			s.users[pos] = user
			s.inc(MetricDuplicates)
			s.log.WithField("id", user.ID).Debug("duplicate id, replacing earlier record")
			continue
		}

		s.index[user.ID] = len(s.users)
		s.users = append(s.users, user)
	}

	s.version++
	s.add(MetricLoaded, len(s.users))
	s.observe("store.load", time.Since(start))
	s.log.WithFields(logrus.Fields{
		"loaded": len(s.users),
		"input":  len(records),
	}).Info("loaded records")
}

// GetByID returns a copy of the record with the given id. The bool reports
// presence; a miss is not an error.
func (s *UserStore) GetByID(_ context.Context, id int64) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.inc(MetricLookups)
	pos, ok := s.index[id]
	if !ok {
		s.inc(MetricLookupMisses)
		return types.User{}, false
	}
	s.inc(MetricLookupHits)
	return s.users[pos].Clone(), true
}

// Add validates and appends a new record. Adding an id that is already live
// returns ErrDuplicateID.
func (s *UserStore) Add(ctx context.Context, raw types.Raw) error {
	user, err := s.validator.Validate(raw)
	if err != nil {
		s.log.WithError(err).Warn("rejecting invalid record on add")
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[user.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, user.ID)
	}

	s.index[user.ID] = len(s.users)
	s.users = append(s.users, user)
	s.version++
	s.inc(MetricAdds)
	s.log.WithField("id", user.ID).Debug("added record")
	return nil
}

// Update validates and replaces the record with the same id, keeping its
// display position. An unknown id returns ErrNotFound.
func (s *UserStore) Update(ctx context.Context, raw types.Raw) error {
	user, err := s.validator.Validate(raw)
	if err != nil {
		s.log.WithError(err).Warn("rejecting invalid record on update")
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[user.ID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, user.ID)
	}

	s.users[pos] = user
	s.version++
	s.inc(MetricUpdates)
	s.log.WithField("id", user.ID).Debug("updated record")
	return nil
}

// Remove deletes the record with the given id and reports whether a record
// was removed. Removing an absent id is a no-op.
func (s *UserStore) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.users = append(s.users[:pos], s.users[pos+1:]...)
	delete(s.index, id)
	// positions after the removed record shift down by one
	for i := pos; i < len(s.users); i++ {
		s.index[s.users[i].ID] = i
	}

	s.version++
	s.inc(MetricRemoves)
	s.log.WithField("id", id).Debug("removed record")
	return true
}

// GetAll returns an independent snapshot of every record in display order.
func (s *UserStore) GetAll(_ context.Context) []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.inc(MetricGetAll)
	return types.CloneAll(s.users)
}

// Filter runs the configured default strategy over the store, consulting
// the result cache when enabled.
func (s *UserStore) Filter(ctx context.Context, c filter.Criteria) ([]types.User, error) {
	return s.FilterWith(ctx, s.strategy, c, s.cfg.EnableCache)
}

// FilterWith runs an explicit strategy. The returned collection is a new
// slice of copies, in display order, never a view into the store.
func (s *UserStore) FilterWith(ctx context.Context, strategy filter.Strategy, c filter.Criteria, useCache bool) ([]types.User, error) {
	if strategy == nil {
		strategy = s.strategy
	}
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	s.inc(MetricFilters)

	if !useCache || s.fcache == nil {
		result := strategy.Apply(s.users, c)
		s.observe("store.filter", time.Since(start))
		return result, nil
	}

	key := fmt.Sprintf("v%d|%s|%s", s.version, strategy.Name(), c.Fingerprint())
	result := s.fcache.fetch(ctx, key, func() []types.User {
		return strategy.Apply(s.users, c)
	})
	s.observe("store.filter", time.Since(start))
	return result, nil
}

// Render formats the given records with the configured default formatter.
func (s *UserStore) Render(_ context.Context, users []types.User, opts format.Options) (string, error) {
	s.inc(MetricRenders)
	return s.formatter.Format(users, opts)
}

// Snapshot returns a new independent store holding copies of the current
// records. The clone has its own cache and metrics.
func (s *UserStore) Snapshot(ctx context.Context) (*UserStore, error) {
	s.mu.RLock()
	records := make([]types.Raw, 0, len(s.users))
	for _, u := range s.users {
		records = append(records, u.ToRaw())
	}
	s.inc(MetricSnapshots)
	s.mu.RUnlock()

	return New(ctx, records, s.cfg)
}

// Count returns the number of live records.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Version returns the mutation counter. It increments on every load, add,
// update and remove, and is embedded in filter cache keys so entries
// computed before a mutation can never be served after it.
func (s *UserStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Metrics exposes the store's registry for read-only export.
func (s *UserStore) Metrics() *metrics.Registry {
	return s.reg
}

func (s *UserStore) inc(name string) {
	if s.cfg.EnableMetrics {
		s.reg.Inc(name)
	}
}

func (s *UserStore) add(name string, n int) {
	if s.cfg.EnableMetrics {
		s.reg.Add(name, n)
	}
}

func (s *UserStore) observe(name string, d time.Duration) {
	if s.cfg.EnableMetrics {
		s.reg.Observe(name, d)
	}
}
