package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/userdeck/userdeck/pkg/types"
)

// Structured renders the collection as a JSON array of objects with a
// deterministic field order, so repeated calls are byte-identical and the
// output parses back with any JSON decoder. An empty collection renders
// as "[]".
type Structured struct{}

func (Structured) Name() string { return "structured" }

func (Structured) Format(users []types.User, opts Options) (string, error) {
	fields, err := resolveFields(opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, u := range users {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for j, f := range fields {
			if j > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(f)
			if err != nil {
				return "", fmt.Errorf("failed to marshal field name %q: %w", f, err)
			}
			b.Write(key)
			b.WriteByte(':')

			if f == types.FieldID {
				b.WriteString(fmt.Sprintf("%d", u.ID))
				continue
			}
			val, err := json.Marshal(fieldValue(u, f))
			if err != nil {
				return "", fmt.Errorf("failed to marshal field %q: %w", f, err)
			}
			b.Write(val)
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String(), nil
}
