// Package inspect interprets the untyped JSON payloads returned by the chat
// backend: token lookup, list envelopes, room selection and field kinds.
package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotList is returned when a payload is neither a JSON array nor a
// {"data": [...]} envelope.
var ErrNotList = errors.New("payload is not a list")

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("decode json: unexpected data after top-level value")

// EnvelopeKey is the key of the single pagination envelope the backend uses.
const EnvelopeKey = "data"

// Decode parses raw JSON into generic values. Numbers are kept as json.Number
// so ids print exactly as the backend sent them. The body must hold exactly
// one value; surrounding whitespace is allowed.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Indent renders v as JSON indented by two spaces.
func Indent(v any) string {
	return encode(v, "  ")
}

// Compact renders v as single-line JSON.
func Compact(v any) string {
	return encode(v, "")
}

func encode(v any, indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Unwrap returns the list held by v. It reports false when v is neither an
// array nor an object whose "data" member is an array.
func Unwrap(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		if inner, ok := t[EnvelopeKey].([]any); ok {
			return inner, true
		}
	}
	return nil, false
}

// UnwrapOrEmpty is Unwrap with unrecognised shapes treated as an empty list.
func UnwrapOrEmpty(v any) []any {
	list, ok := Unwrap(v)
	if !ok {
		return []any{}
	}
	return list
}

// RequireList is Unwrap returning ErrNotList for unrecognised shapes.
func RequireList(v any) ([]any, error) {
	list, ok := Unwrap(v)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotList, KindOf(v))
	}
	return list, nil
}

// Scalar renders a JSON scalar for display. Strings are returned unquoted,
// null as an empty string and composite values as compact JSON.
func Scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return Compact(t)
	}
}
