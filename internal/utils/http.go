package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON decodes a response body into T. An empty body yields (nil, nil)
// so callers can tell "no content" apart from a decoding failure. In strict
// mode unknown fields are rejected, otherwise they are ignored.
func DecodeJSON[T any](body []byte, strict bool) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	if strict {
		decoder.DisallowUnknownFields()
	}

	var result T
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return &result, nil
}
