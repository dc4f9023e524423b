// Package filter provides the pluggable matching strategies used by the
// store. Strategies are pure: they never mutate records and never call back
// into the store.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Criteria maps field names to expected values. A nil or empty Criteria
// matches every record.
type Criteria map[string]string

// ErrUnknownStrategy is returned by New for unregistered names.
var ErrUnknownStrategy = errors.New("unknown filter strategy")

// Strategy decides whether records match a criteria set.
type Strategy interface {
	// Name identifies the strategy in cache keys and logs. Strategies
	// honoring the case-sensitivity flag must reflect it in the name so
	// differently configured instances never share a cache entry.
	Name() string

	// Match reports whether a single record satisfies the criteria.
	// A criterion naming a field the record lacks never matches.
	Match(u types.User, c Criteria) bool

	// Apply filters records, preserving input order. The result is a new
	// slice of cloned records, never a view into the input.
	Apply(users []types.User, c Criteria) []types.User
}

// applyWith implements the shared Apply loop for any Match function.
func applyWith(users []types.User, c Criteria, match func(types.User, Criteria) bool) []types.User {
	out := make([]types.User, 0, len(users))
	for _, u := range users {
		if match(u, c) {
			out = append(out, u.Clone())
		}
	}
	return out
}

// flagged appends a case-sensitivity marker so the name distinguishes the
// two configurations of one strategy.
func flagged(name string, caseSensitive bool) string {
	if caseSensitive {
		return name + ":cs"
	}
	return name
}

func compare(value, expected string, caseSensitive, substring bool) bool {
	if !caseSensitive {
		value = strings.ToLower(value)
		expected = strings.ToLower(expected)
	}
	if substring {
		return strings.Contains(value, expected)
	}
	return value == expected
}

// Exact matches a record when every criterion equals the record's field
// value, honoring the case-sensitivity flag.
type Exact struct {
	CaseSensitive bool
}

func (s Exact) Name() string { return flagged("exact", s.CaseSensitive) }

func (s Exact) Match(u types.User, c Criteria) bool {
	for field, expected := range c {
		value, ok := u.Field(field)
		if !ok || !compare(value, expected, s.CaseSensitive, false) {
			return false
		}
	}
	return true
}

func (s Exact) Apply(users []types.User, c Criteria) []types.User {
	return applyWith(users, c, s.Match)
}

// Substring matches a record when every criterion value appears as a
// substring of the record's field value.
type Substring struct {
	CaseSensitive bool
}

func (s Substring) Name() string { return flagged("substring", s.CaseSensitive) }

func (s Substring) Match(u types.User, c Criteria) bool {
	for field, expected := range c {
		value, ok := u.Field(field)
		if !ok || !compare(value, expected, s.CaseSensitive, true) {
			return false
		}
	}
	return true
}

func (s Substring) Apply(users []types.User, c Criteria) []types.User {
	return applyWith(users, c, s.Match)
}

// CriteriaStrategy is the hybrid default: substring matching on name and
// email, exact matching everywhere else.
type CriteriaStrategy struct {
	CaseSensitive bool
}

func (s CriteriaStrategy) Name() string { return flagged("criteria", s.CaseSensitive) }

func (s CriteriaStrategy) Match(u types.User, c Criteria) bool {
	for field, expected := range c {
		value, ok := u.Field(field)
		if !ok {
			return false
		}
		substring := field == types.FieldName || field == types.FieldEmail
		if !compare(value, expected, s.CaseSensitive, substring) {
			return false
		}
	}
	return true
}

func (s CriteriaStrategy) Apply(users []types.User, c Criteria) []types.User {
	return applyWith(users, c, s.Match)
}

// Fingerprint renders the criteria as a deterministic string for cache
// keys: sorted field=value pairs joined by a unit separator.
func (c Criteria) Fingerprint() string {
	if len(c) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(c))
	for field, value := range c {
		pairs = append(pairs, field+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x1f")
}

// New resolves a strategy by registered name. Resolution happens once at
// configuration time; an unknown name is a usage error.
func New(name string, caseSensitive bool) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(caseSensitive), nil
}

var registry = map[string]func(caseSensitive bool) Strategy{
	"exact":     func(cs bool) Strategy { return Exact{CaseSensitive: cs} },
	"substring": func(cs bool) Strategy { return Substring{CaseSensitive: cs} },
	"criteria":  func(cs bool) Strategy { return CriteriaStrategy{CaseSensitive: cs} },
}
