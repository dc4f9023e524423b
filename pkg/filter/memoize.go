package filter

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/userdeck/userdeck/pkg/cache"
	"github.com/userdeck/userdeck/pkg/types"
)

// Memoized wraps a strategy and remembers per-record match verdicts in a
// cache. Worth it for composite strategies whose Match cost dominates the
// cache probe; the inner strategy must be pure. Verdicts are keyed on the
// record's content, so a record updated in place never reuses the verdict
// computed for its previous state.
type Memoized struct {
	inner Strategy
	store cache.Cache
}

// NewMemoized wraps strategy with verdict memoization backed by c.
func NewMemoized(strategy Strategy, c cache.Cache) *Memoized {
	return &Memoized{inner: strategy, store: c}
}

func (m *Memoized) Name() string {
	return "memoized(" + m.inner.Name() + ")"
}

func (m *Memoized) key(u types.User, c Criteria) string {
	return fmt.Sprintf("%s|%d|%x|%s", m.inner.Name(), u.ID, digest(u), c.Fingerprint())
}

// digest folds every field value of the record into a single hash.
func digest(u types.User) uint64 {
	h := fnv.New64a()
	for _, f := range types.Fields() {
		v, _ := u.Field(f)
		h.Write([]byte(v))
		h.Write([]byte{0x1f})
	}
	extras := make([]string, 0, len(u.Extra))
	for k := range u.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(u.Extra[k]))
		h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

func (m *Memoized) Match(u types.User, c Criteria) bool {
	ctx := context.Background()
	key := m.key(u, c)

	if val, err := m.store.Get(ctx, key); err == nil {
		if verdict, ok := val.(bool); ok {
			return verdict
		}
	}

	verdict := m.inner.Match(u, c)
	_ = m.store.Set(ctx, key, verdict, cache.NoExpiration)
	return verdict
}

func (m *Memoized) Apply(users []types.User, c Criteria) []types.User {
	return applyWith(users, c, m.Match)
}
