//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a value was supplied, separately from the value itself.
// A zero Optional is absent. When decoded from JSON, a key that is present with a
// null value yields an Optional that is present and null.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns a present Optional that explicitly holds no value.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// Present reports whether a value (possibly null) was supplied.
func (o Optional[T]) Present() bool { return o.present }

// IsNull reports whether the value was supplied as null.
func (o Optional[T]) IsNull() bool { return o.present && o.null }

// Get returns the value and whether it is present and non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present && !o.null
}

// Ptr returns nil when absent or null, otherwise a pointer to a copy of the value.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

// UnmarshalJSON records presence and decodes the value.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.value)
}

// MarshalJSON encodes absent and null values as JSON null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}
