package format

import (
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Export wraps a verbose rendering in an envelope suitable for dumping to
// other tooling: a start banner, a rule, one verbose block per record each
// followed by a rule, and an end banner. The envelope is emitted even for
// an empty collection.
type Export struct{}

const (
	exportStart = "USER_EXPORT_START"
	exportEnd   = "USER_EXPORT_END"
	exportRule  = 80
)

func (Export) Name() string { return "export" }

func (Export) Format(users []types.User, opts Options) (string, error) {
	fields, err := resolveFields(opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(exportStart)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", exportRule))
	b.WriteByte('\n')

	verbose := Verbose{}
	for _, u := range users {
		block, err := verbose.Format([]types.User{u}, Options{Include: fields})
		if err != nil {
			return "", err
		}
		b.WriteString(block)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", exportRule))
		b.WriteByte('\n')
	}

	b.WriteString(exportEnd)
	return b.String(), nil
}
