package reactive

import (
	"iter"
	"slices"
)

// List is a reactive slice. Every mutation notifies; every read is tracked.
type List[T any] struct {
	*Mutable[T]
}

func NewList[T any](items ...T) *List[T] {
	cell := NewCell(slices.Clone(items), WithEquality(Always[[]T]()))
	return &List[T]{Instrument(cell)}
}

// At returns the element at i, counting from the end when i is negative.
func (l *List[T]) At(i int) (v T, ok bool) {
	s := l.Read()
	if i < 0 {
		i += len(s)
	}
	if i < 0 || i >= len(s) {
		return v, false
	}
	return s[i], true
}

// Items returns a copy of the elements.
func (l *List[T]) Items() []T {
	return slices.Clone(l.Read())
}

// All iterates over a snapshot of the elements.
func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.Items())
}

// IndexFunc returns the index of the first element satisfying fn, or -1.
func (l *List[T]) IndexFunc(fn func(T) bool) int {
	return slices.IndexFunc(l.Read(), fn)
}

// SetAt replaces the element at i. It reports false when i is out of range.
func (l *List[T]) SetAt(i int, v T) bool {
	n := len(l.cell.Peek())
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return false
	}
	l.Splice(i, 1, v)
	return true
}

// RemoveAt removes the element at i and returns it.
func (l *List[T]) RemoveAt(i int) (v T, ok bool) {
	n := len(l.cell.Peek())
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return v, false
	}
	removed := l.Splice(i, 1)
	if len(removed) == 0 {
		return v, false
	}
	return removed[0], true
}

// InsertAt inserts items before index i.
func (l *List[T]) InsertAt(i int, items ...T) {
	l.Splice(i, 0, items...)
}

// RemoveWhere removes every element satisfying fn and returns how many went.
// Nothing is notified when no element matches.
func (l *List[T]) RemoveWhere(fn func(T) bool) int {
	s := l.cell.Peek()
	if !slices.ContainsFunc(s, fn) {
		return 0
	}

	var removed int
	l.cell.cell.Mutate(func(v any) any {
		s := as[[]T](v)
		kept := slices.DeleteFunc(s, fn)
		removed = len(s) - len(kept)
		return kept
	})
	return removed
}

// Clear removes every element.
func (l *List[T]) Clear() {
	if len(l.cell.Peek()) == 0 {
		return
	}
	l.Splice(0, len(l.cell.Peek()))
}

// Replace swaps in a copy of items as the new contents.
func (l *List[T]) Replace(items ...T) {
	l.cell.Write(slices.Clone(items))
}
