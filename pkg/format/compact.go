package format

import (
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Compact renders one line per record: "Label: value" pairs joined by a
// pipe delimiter. An empty collection renders as the empty string.
type Compact struct{}

func (Compact) Name() string { return "compact" }

func (Compact) Format(users []types.User, opts Options) (string, error) {
	fields, err := resolveFields(opts)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(users)+2)
	for _, u := range users {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, label(f)+": "+fieldValue(u, f))
		}
		lines = append(lines, strings.Join(parts, " | "))
	}

	out := strings.Join(lines, "\n")
	if opts.ShowTotal {
		out += "\n\n" + footer(len(users))
	}
	return out, nil
}
