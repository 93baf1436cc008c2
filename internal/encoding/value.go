// Package encoding declares the request schemas of the API and how their raw values
// are coerced into domain types.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a raw scalar request value. JSON strings, numbers and booleans are all kept
// in their textual form so that the validators can coerce and report them per field.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding string value: %w", err)
		}
		*v = Value(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected a scalar value, got %s", string(data))
	default:
		*v = Value(data)
	}
	return nil
}

func (v *Value) UnmarshalText(text []byte) error {
	*v = Value(text)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v Value) String() string {
	return string(v)
}

func (v Value) IsSet() bool {
	return v != ""
}
