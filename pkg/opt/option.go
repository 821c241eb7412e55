package opt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Option holds either a present value of type T or nothing.
// The zero value is Empty.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a Present option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an Empty option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.present
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.present
}

// Get returns the held value and true, or the zero value and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// Unwrap returns the held value. It panics if the option is empty.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("opt: Unwrap called on an empty Option")
	}
	return o.value
}

// OrElse returns the held value, or fallback when the option is empty.
func (o Option[T]) OrElse(fallback T) T {
	if !o.present {
		return fallback
	}
	return o.value
}

// Set stores v, replacing any previous value.
func (o *Option[T]) Set(v T) {
	o.value = v
	o.present = true
}

// Take moves the current state out of o and leaves o empty.
func (o *Option[T]) Take() Option[T] {
	taken := *o
	*o = Option[T]{}
	return taken
}

func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MarshalJSON encodes an empty option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as empty and anything else as a present value.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}
