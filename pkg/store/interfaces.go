package store

import (
	"context"

	"github.com/userdeck/userdeck/pkg/filter"
	"github.com/userdeck/userdeck/pkg/format"
	"github.com/userdeck/userdeck/pkg/types"
)

// Store defines the operations offered by a user record store. Consumers
// should depend on this interface so tests can substitute their own
// implementation.
type Store interface {
	// Load replaces the store contents with the given records.
	Load(ctx context.Context, records []types.Raw)

	// GetByID returns a copy of the record with the given id; the bool
	// reports presence.
	GetByID(ctx context.Context, id int64) (types.User, bool)

	// Add appends a validated record. Duplicate ids are rejected.
	Add(ctx context.Context, raw types.Raw) error

	// Update replaces the record with the same id in place.
	Update(ctx context.Context, raw types.Raw) error

	// Remove deletes a record and reports whether one was removed.
	Remove(ctx context.Context, id int64) bool

	// GetAll returns an independent snapshot in display order.
	GetAll(ctx context.Context) []types.User

	// Filter runs the configured default strategy over the store.
	Filter(ctx context.Context, c filter.Criteria) ([]types.User, error)

	// FilterWith runs an explicit strategy, optionally using the cache.
	FilterWith(ctx context.Context, strategy filter.Strategy, c filter.Criteria, useCache bool) ([]types.User, error)

	// Render formats records with the configured default formatter.
	Render(ctx context.Context, users []types.User, opts format.Options) (string, error)

	// Count returns the number of live records.
	Count() int

	// Version returns the mutation counter.
	Version() uint64
}

// Compile-time interface compliance check
var _ Store = (*UserStore)(nil)
