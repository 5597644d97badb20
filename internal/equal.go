package internal

import "reflect"

// DefaultEqual compares with == when both dynamic types are comparable
// and falls back to reflect.DeepEqual otherwise.
func DefaultEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return comparableEqual(a, b)
	}

	return reflect.DeepEqual(a, b)
}

// comparableEqual falls back to DeepEqual when == panics on an interface
// field holding an uncomparable value.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}

// NeverEqual makes every write observable.
func NeverEqual(a, b any) bool {
	return false
}
