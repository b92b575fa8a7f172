package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeCollection maps every response shape the backend uses for a list to
// one slice: a bare array, an object wrapping the array under key, or an
// empty/null body. A missing key decodes to an empty slice.
func decodeCollection[T any](body []byte, key string) ([]T, error) {
	items := []T{}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return items, nil
	}

	if body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode %s array: %w", key, err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", key, err)
	}
	raw, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}
