package format

import (
	"strconv"
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Verbose renders a multi-line block per record: a "User ID" heading
// followed by one indented "Label: value" line per field, blocks separated
// by a blank line. An empty collection renders as the empty string.
type Verbose struct{}

func (Verbose) Name() string { return "verbose" }

func (Verbose) Format(users []types.User, opts Options) (string, error) {
	fields, err := resolveFields(opts)
	if err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(users))
	for _, u := range users {
		lines := make([]string, 0, len(fields)+1)
		lines = append(lines, "User ID: "+strconv.FormatInt(u.ID, 10))
		for _, f := range fields {
			lines = append(lines, "  "+label(f)+": "+fieldValue(u, f))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	out := strings.Join(blocks, "\n\n")
	if opts.ShowTotal {
		out += "\n\n" + footer(len(users))
	}
	return out, nil
}
