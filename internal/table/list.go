package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// EncodeList serializes a list-of-strings cell
func EncodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeList parses a list-of-strings cell. Cells written as Python list
// literals are repaired to JSON first. An empty cell decodes to an empty
// list.
func DecodeList(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{}, nil
	}

	values := []string{}
	if err := json.Unmarshal([]byte(cell), &values); err == nil {
		return values, nil
	}

	repaired, err := jsonrepair.JSONRepair(cell)
	if err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &values); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return values, nil
}
