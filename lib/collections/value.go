package collections

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned by GetValue when a value has an unexpected type.
var ErrTypeMismatch = errors.New("collections: value has unexpected type")

// GetValue returns data[key] as a T. A missing key is filled with factory()
// (or the zero value of T if factory is nil) and the new value is stored.
//
// If the stored value is not a T, the entry is overwritten with nil and
// (zero, false, nil) is returned when setNilOnMismatch is set, otherwise
// ErrTypeMismatch is returned and data is left unchanged.
// The boolean reports whether a usable value was returned.
func GetValue[T any](data map[string]any, key string, factory func() T, setNilOnMismatch bool) (T, bool, error) {
	var zero T

	raw, defined := data[key]
	if !defined {
		v := zero
		if factory != nil {
			v = factory()
		}
		data[key] = v
		return v, true, nil
	}

	if v, ok := raw.(T); ok {
		return v, true, nil
	}

	if setNilOnMismatch {
		data[key] = nil
		return zero, false, nil
	}
	return zero, false, fmt.Errorf("%w: %s is %T, want %T", ErrTypeMismatch, key, raw, zero)
}
