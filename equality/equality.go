// Package equality holds the comparison functions used to gate selection
// notifications. All of them are pure and safe on any well-formed, non-cyclic
// input.
package equality

import "reflect"

// Func reports whether next and prev should be treated as the same slice.
type Func[V any] func(next, prev V) bool

// StrictEqual is identity for reference kinds (pointers, maps, slices, chans,
// funcs) and == for everything else. Slices are identical when nil-ness,
// length, capacity and backing pointer all match. Go may place every
// zero-length allocation at the same address, so two separately made empty
// slices with zero capacity usually compare equal. Arrays and structs compare their
// elements under the same rule, so they never panic on uncomparable fields.
func StrictEqual[T any](a, b T) bool {
	return same(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

// ShallowEqualArray compares two slices element by element with StrictEqual.
func ShallowEqualArray[E any](a, b []E) bool {
	return ShallowEqualArrayFrom(a, b, 0)
}

// ShallowEqualArrayFrom is ShallowEqualArray skipping the first fromIndex
// elements, for callers that know a prefix is stable.
func ShallowEqualArrayFrom[E any](a, b []E, fromIndex int) bool {
	if a == nil && b == nil {
		return true
	}
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := max(fromIndex, 0); i < len(a); i++ {
		if !StrictEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ShallowEqual compares maps and structs (or pointers to them) key by key
// with StrictEqual. A nil value only equals the identical nil value.
func ShallowEqual(a, b any) bool {
	return keyed(reflect.ValueOf(a), reflect.ValueOf(b), false)
}

// DeepEqual is ShallowEqual recursing into nested maps, structs, slices and
// arrays. Cyclic structures are not detected.
func DeepEqual(a, b any) bool {
	return keyed(reflect.ValueOf(a), reflect.ValueOf(b), true)
}

func keyed(a, b reflect.Value, deep bool) bool {
	if same(a, b) {
		return true
	}

	ua, ub := unwrap(a), unwrap(b)
	aAbsent, bAbsent := absent(ua), absent(ub)
	if aAbsent != bAbsent {
		return false
	}
	if aAbsent {
		return false
	}
	if ua.Type() != ub.Type() {
		return false
	}

	child := func(x, y reflect.Value) bool {
		if deep {
			return keyed(x, y, true)
		}
		return same(x, y)
	}

	switch ua.Kind() {
	case reflect.Map:
		if ua.Len() != ub.Len() {
			return false
		}
		iter := ua.MapRange()
		for iter.Next() {
			bv := ub.MapIndex(iter.Key())
			if !bv.IsValid() {
				return false
			}
			if !child(iter.Value(), bv) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < ua.NumField(); i++ {
			if !child(ua.Field(i), ub.Field(i)) {
				return false
			}
		}
		return true

	case reflect.Slice, reflect.Array:
		if ua.Len() != ub.Len() {
			return false
		}
		for i := 0; i < ua.Len(); i++ {
			if !child(ua.Index(i), ub.Index(i)) {
				return false
			}
		}
		return true

	default:
		return same(ua, ub)
	}
}

// unwrap follows interfaces and pointers down to the value they hold.
// A nil along the way yields the invalid Value.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func absent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func same(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return same(a.Elem(), b.Elem())

	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	case reflect.Slice:
		return a.IsNil() == b.IsNil() && a.Len() == b.Len() && a.Cap() == b.Cap() && a.Pointer() == b.Pointer()

	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !same(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !same(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true

	default:
		return a.Equal(b)
	}
}
