package model

import (
	"bytes"
	"encoding/json"
)

// Optional marks whether a JSON field was present in a request body and whether it
// carried a value. The zero value means "not supplied".
type Optional[T any] struct {
	Set   bool // the key appeared in the payload
	Null  bool // the key appeared with a JSON null
	Value T
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked when the key is present
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get returns the value and true when a non-null value was supplied
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}

// ApplyTo overwrites *dst when a non-null value was supplied
func (o Optional[T]) ApplyTo(dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}
