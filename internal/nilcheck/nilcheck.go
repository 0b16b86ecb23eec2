// Package nilcheck tells whether a value of a type parameter is nil.
package nilcheck

import "reflect"

// IsNil reports whether v is a nil interface, pointer, map, slice, channel or
// function. Values of other kinds are never nil.
func IsNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
