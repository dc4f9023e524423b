package types

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DecodeJSON parses a JSON array of objects into raw records.
func DecodeJSON(data []byte) ([]Raw, error) {
	var records []Raw
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}
	return records, nil
}

// DecodeYAML parses a YAML sequence of mappings into raw records.
func DecodeYAML(data []byte) ([]Raw, error) {
	var records []Raw
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}
	return records, nil
}
