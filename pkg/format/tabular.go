package format

import (
	"strings"
	"unicode/utf8"

	"github.com/userdeck/userdeck/pkg/types"
)

// Tabular renders fixed-width columns with a header row of field labels.
// Column widths are computed from the data, cells are left-aligned and
// separated by two spaces. An empty collection renders as the empty string.
type Tabular struct{}

func (Tabular) Name() string { return "tabular" }

func (Tabular) Format(users []types.User, opts Options) (string, error) {
	fields, err := resolveFields(opts)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		if opts.ShowTotal {
			return "\n\n" + footer(0), nil
		}
		return "", nil
	}

	widths := make([]int, len(fields))
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = label(f)
		widths[i] = utf8.RuneCountInString(headers[i])
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = fieldValue(u, f)
			if w := utf8.RuneCountInString(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, row)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinRow(headers, widths))
	for _, row := range rows {
		lines = append(lines, joinRow(row, widths))
	}

	out := strings.Join(lines, "\n")
	if opts.ShowTotal {
		out += "\n\n" + footer(len(users))
	}
	return out, nil
}

func joinRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		// no trailing padding on the last column; widths are in runes so
		// multibyte values stay aligned
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}
