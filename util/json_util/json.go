// Package json_util provides JSON helpers including a raw message type used
// for free-form columns (invoice items, user permissions).
package json_util

import (
	"errors"

	"github.com/goccy/go-json"
)

// RawMessage marshals empty values as "null" instead of "[]".
type RawMessage []byte

func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("json_util.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[0:0], data...)
	return nil
}

// ToRawMessage serializes v into a RawMessage.
func ToRawMessage(v any) (RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return RawMessage(data), nil
}

// FromRawMessage deserializes m into dest. An empty message leaves dest
// untouched.
func FromRawMessage(m RawMessage, dest any) error {
	if len(m) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(m), dest)
}
