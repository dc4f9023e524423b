// Package format renders record collections to strings. Formatters are
// resolved by name once at configuration time and are pure: the same
// collection always renders to byte-identical output.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Sentinel rendered for a selected field the record does not carry.
const Missing = "N/A"

var (
	// ErrUnknownFormatter is returned by New for unregistered names.
	ErrUnknownFormatter = errors.New("unknown formatter")

	// ErrFieldSelection is returned when both an include and an exclude
	// list are supplied. That is a caller mistake, not bad data.
	ErrFieldSelection = errors.New("include and exclude field lists are mutually exclusive")
)

// Options controls field selection and the trailing total line.
type Options struct {
	// Include restricts output to these fields. Canonical fields keep
	// their display order; unknown names are appended as given.
	Include []string

	// Exclude drops these fields from the canonical set.
	Exclude []string

	// ShowTotal appends a "Total users processed: N" footer. Ignored by
	// the structured formatter, whose output must stay parseable, and by
	// the export formatter, whose envelope is fixed.
	ShowTotal bool
}

// Formatter renders a record collection to a single string.
type Formatter interface {
	// Name identifies the formatter in config and logs.
	Name() string

	// Format renders users. An empty collection renders to the
	// formatter's documented empty value and is never an error.
	Format(users []types.User, opts Options) (string, error)
}

// New resolves a formatter by registered name.
func New(name string) (Formatter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
	}
	return factory(), nil
}

var registry = map[string]func() Formatter{
	"compact":    func() Formatter { return Compact{} },
	"verbose":    func() Formatter { return Verbose{} },
	"structured": func() Formatter { return Structured{} },
	"tabular":    func() Formatter { return Tabular{} },
	"export":     func() Formatter { return Export{} },
}

// resolveFields turns the selection options into an ordered field list.
func resolveFields(opts Options) ([]string, error) {
	if len(opts.Include) > 0 && len(opts.Exclude) > 0 {
		return nil, ErrFieldSelection
	}

	canonical := types.Fields()

	if len(opts.Include) > 0 {
		included := make(map[string]struct{}, len(opts.Include))
		for _, f := range opts.Include {
			included[f] = struct{}{}
		}
		fields := make([]string, 0, len(opts.Include))
		seen := make(map[string]struct{}, len(opts.Include))
		for _, f := range canonical {
			if _, ok := included[f]; ok {
				fields = append(fields, f)
				seen[f] = struct{}{}
			}
		}
		// Non-canonical names (Extra fields) keep their given order.
		for _, f := range opts.Include {
			if _, ok := seen[f]; !ok {
				fields = append(fields, f)
				seen[f] = struct{}{}
			}
		}
		return fields, nil
	}

	if len(opts.Exclude) > 0 {
		excluded := make(map[string]struct{}, len(opts.Exclude))
		for _, f := range opts.Exclude {
			excluded[f] = struct{}{}
		}
		fields := make([]string, 0, len(canonical))
		for _, f := range canonical {
			if _, ok := excluded[f]; !ok {
				fields = append(fields, f)
			}
		}
		return fields, nil
	}

	return canonical, nil
}

// fieldValue returns the display value for a field, substituting the
// Missing sentinel for absent fields.
func fieldValue(u types.User, field string) string {
	value, ok := u.Field(field)
	if !ok {
		return Missing
	}
	return value
}

// label turns a field name into its display label: underscores become
// spaces, words are title-cased, and "id" renders as "ID".
func label(field string) string {
	if field == types.FieldID {
		return "ID"
	}
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func footer(n int) string {
	return fmt.Sprintf("Total users processed: %d", n)
}
