// Package seq implements the in-place sequence operations that reactive
// collections instrument. Indexes follow relative-index rules: a negative
// index counts back from the end, and every index is clamped to [0, len].
package seq

import "slices"

// Resolve maps a relative index onto [0, n].
func Resolve(i, n int) int {
	if i < 0 {
		return max(n+i, 0)
	}
	return min(i, n)
}

// bounds reads optional start and end arguments, defaulting to 0 and n.
func bounds(n int, args []int) (start, end int) {
	start, end = 0, n
	if len(args) > 0 {
		start = Resolve(args[0], n)
	}
	if len(args) > 1 {
		end = Resolve(args[1], n)
	}
	return start, end
}

// Push appends items and returns the new length.
func Push[T any](s []T, items ...T) ([]T, int) {
	s = append(s, items...)
	return s, len(s)
}

// Pop removes the last element. ok is false on an empty sequence.
func Pop[T any](s []T) (out []T, last T, ok bool) {
	if len(s) == 0 {
		return s, last, false
	}

	n := len(s) - 1
	last = s[n]

	var zero T
	s[n] = zero

	return s[:n], last, true
}

// Shift removes the first element. ok is false on an empty sequence.
func Shift[T any](s []T) (out []T, first T, ok bool) {
	if len(s) == 0 {
		return s, first, false
	}

	first = s[0]
	return slices.Delete(s, 0, 1), first, true
}

// Unshift inserts items at the front and returns the new length.
func Unshift[T any](s []T, items ...T) ([]T, int) {
	s = slices.Insert(s, 0, items...)
	return s, len(s)
}

// Splice removes deleteCount elements at start, inserts items there and
// returns the removed elements. deleteCount is clamped to what is available.
func Splice[T any](s []T, start, deleteCount int, items ...T) (out []T, removed []T) {
	n := len(s)
	start = Resolve(start, n)
	deleteCount = min(max(deleteCount, 0), n-start)

	removed = slices.Clone(s[start : start+deleteCount])
	if removed == nil {
		removed = []T{}
	}

	return slices.Replace(s, start, start+deleteCount, items...), removed
}

// Sort orders s in place with a stable sort.
func Sort[T any](s []T, cmp func(a, b T) int) []T {
	slices.SortStableFunc(s, cmp)
	return s
}

// Reverse reverses s in place.
func Reverse[T any](s []T) []T {
	slices.Reverse(s)
	return s
}

// Fill sets every element in [start, end) to value. start and end are optional.
func Fill[T any](s []T, value T, startEnd ...int) []T {
	start, end := bounds(len(s), startEnd)
	for i := start; i < end; i++ {
		s[i] = value
	}
	return s
}

// CopyWithin copies the elements in [start, end) over the elements starting
// at target, without changing the length. start and end are optional.
func CopyWithin[T any](s []T, target int, startEnd ...int) []T {
	n := len(s)
	to := Resolve(target, n)
	from, final := bounds(n, startEnd)

	count := min(final-from, n-to)
	if count > 0 {
		copy(s[to:to+count], s[from:from+count])
	}
	return s
}
