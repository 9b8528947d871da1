package opentdb

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("decoded text is not valid UTF-8")

// decodeBase64 decodes a standard base64 string into UTF-8 text
func decodeBase64(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid base64 %q: %w", s, err)
	}
	if !utf8.Valid(b) {
		return "", errInvalidUTF8
	}
	return string(b), nil
}

// missingField reports a required JSON field that was absent or null
func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

// base64String is a JSON string field carrying base64 encoded text
type base64String string

func (s *base64String) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := decodeBase64(raw)
	if err != nil {
		return err
	}
	*s = base64String(decoded)
	return nil
}

// categoryMap converts the id keyed statistics object into a typed mapping.
// Every key must be a decimal id of a concrete category.
func categoryMap[V any](raw map[string]V) (map[Category]V, error) {
	out := make(map[Category]V, len(raw))
	for key, v := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid category key %q: %w", key, err)
		}
		c, err := statsCategory(id)
		if err != nil {
			return nil, fmt.Errorf("invalid category key %q: %w", key, err)
		}
		out[c] = v
	}
	return out, nil
}
