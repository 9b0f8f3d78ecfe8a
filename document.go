// Defines the Document type, the root value of a JSON file.

package structfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Document is the root value of a JSON file: either an object or an array.
//
// The zero Document is the empty object. Numbers read from a file are
// json.Number values.
type Document struct {
	object  map[string]any
	array   []any
	isArray bool
}

// NewObject returns a Document holding a single object.
func NewObject(m map[string]any) Document {
	return Document{object: m}
}

// NewArray returns a Document holding an array of the given values.
func NewArray(items ...any) Document {
	if items == nil {
		items = []any{}
	}
	return Document{array: items, isArray: true}
}

// IsArray returns true if the root value is an array.
func (d Document) IsArray() bool {
	return d.isArray
}

// Object returns the root object, or false if the root is an array.
//
// The returned map is never nil when ok is true.
func (d Document) Object() (map[string]any, bool) {
	if d.isArray {
		return nil, false
	}
	if d.object == nil {
		return map[string]any{}, true
	}
	return d.object, true
}

// Array returns the root array, or false if the root is an object.
func (d Document) Array() ([]any, bool) {
	if !d.isArray {
		return nil, false
	}
	return d.array, true
}

// Value returns the root as map[string]any or []any.
func (d Document) Value() any {
	if d.isArray {
		return d.array
	}
	m, _ := d.Object()
	return m
}

// Clone returns a shallow copy of the document; nested values are shared.
func (d Document) Clone() Document {
	if d.isArray {
		return NewArray(slices.Clone(d.array)...)
	}
	return NewObject(maps.Clone(d.object))
}

// Len returns the number of array elements or object keys.
func (d Document) Len() int {
	if d.isArray {
		return len(d.array)
	}
	return len(d.object)
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value())
}

// UnmarshalJSON implements json.Unmarshaler. Roots other than an object or an
// array are rejected. Numbers are kept as json.Number.
func (d *Document) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case map[string]any:
		*d = NewObject(t)
	case []any:
		*d = NewArray(t...)
	default:
		return fmt.Errorf("%w: root is %T, want object or array", ErrMalformed, v)
	}
	return nil
}

// decodeValue parses exactly one JSON value. Numbers are decoded as
// json.Number so that integers beyond 2^53 keep every digit.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

var errTrailingData = errors.New("unexpected data after top-level value")
