// Package jsonutil holds the small JSON helpers shared by the API client and
// the table renderer: context-wrapped decoding, payload shape checks, and
// display formatting of decoded values.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// IsArray reports whether data holds a JSON array at the top level.
// Leading whitespace is ignored; the rest of the document is not validated.
func IsArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ToString converts a decoded JSON value to its display form.
// nil renders empty, whole floats render without a fractional part.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// UnmarshalArrayAllowEmpty unmarshals JSON data into a slice.
// An empty array yields an empty, non-nil slice.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	entries := []T{}
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, nil
}
