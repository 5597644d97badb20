package reactive

import (
	"cmp"

	"github.com/giovanni1707/DOMHelpers-Reactive-sub000/seq"
)

// Op selects which sequence operations of a Mutable notify dependents.
type Op uint16

const (
	OpPush Op = 1 << iota
	OpPop
	OpShift
	OpUnshift
	OpSplice
	OpSort
	OpReverse
	OpFill
	OpCopyWithin

	OpAll = OpPush | OpPop | OpShift | OpUnshift | OpSplice | OpSort | OpReverse | OpFill | OpCopyWithin
)

var opNames = [...]string{"push", "pop", "shift", "unshift", "splice", "sort", "reverse", "fill", "copyWithin"}

func (o Op) String() string {
	if o == 0 {
		return "none"
	}

	s := ""
	for i, name := range opNames {
		if o&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	return s
}

// Mutable mutates the slice held by a cell in place. Each call to an
// instrumented operation notifies the cell's dependents exactly once, even
// though the cell value is edited rather than replaced. Operations left out
// of the instrumentation still mutate, silently.
type Mutable[T any] struct {
	cell *Cell[[]T]
	ops  Op
}

// Instrument wraps cell so that ops notify its dependents. With no ops every
// operation is instrumented. Instrumenting a cell a second time returns the
// first wrapper unchanged.
func Instrument[T any](cell *Cell[[]T], ops ...Op) *Mutable[T] {
	if existing, ok := cell.cell.Instrumented().(*Mutable[T]); ok {
		return existing
	}

	var mask Op
	for _, op := range ops {
		mask |= op
	}
	if len(ops) == 0 {
		mask = OpAll
	}

	m := &Mutable[T]{cell: cell, ops: mask}
	cell.cell.MarkInstrumented(m)
	return m
}

// Cell returns the wrapped cell.
func (m *Mutable[T]) Cell() *Cell[[]T] { return m.cell }

// Ops returns the instrumented operations.
func (m *Mutable[T]) Ops() Op { return m.ops }

// Read returns the backing slice, tracking the dependency.
func (m *Mutable[T]) Read() []T { return m.cell.Read() }

// Len returns the length, tracking the dependency.
func (m *Mutable[T]) Len() int { return len(m.cell.Read()) }

func (m *Mutable[T]) apply(op Op, fn func([]T) []T) {
	if m.ops&op == 0 {
		m.cell.cell.Replace(fn(m.cell.Peek()))
		return
	}

	m.cell.cell.Mutate(func(v any) any {
		return fn(as[[]T](v))
	})
}

// Push appends items and returns the new length.
func (m *Mutable[T]) Push(items ...T) int {
	var n int
	m.apply(OpPush, func(s []T) []T {
		s, n = seq.Push(s, items...)
		return s
	})
	return n
}

// Pop removes the last element. ok is false when the slice was empty.
func (m *Mutable[T]) Pop() (last T, ok bool) {
	m.apply(OpPop, func(s []T) []T {
		s, last, ok = seq.Pop(s)
		return s
	})
	return last, ok
}

// Shift removes the first element. ok is false when the slice was empty.
func (m *Mutable[T]) Shift() (first T, ok bool) {
	m.apply(OpShift, func(s []T) []T {
		s, first, ok = seq.Shift(s)
		return s
	})
	return first, ok
}

// Unshift inserts items at the front and returns the new length.
func (m *Mutable[T]) Unshift(items ...T) int {
	var n int
	m.apply(OpUnshift, func(s []T) []T {
		s, n = seq.Unshift(s, items...)
		return s
	})
	return n
}

// Splice removes deleteCount elements at start, inserts items there, and
// returns the removed elements. A negative start counts from the end.
func (m *Mutable[T]) Splice(start, deleteCount int, items ...T) []T {
	removed := []T{}
	m.apply(OpSplice, func(s []T) []T {
		s, removed = seq.Splice(s, start, deleteCount, items...)
		return s
	})
	return removed
}

// Sort sorts in place, keeping equal elements in order. compare is required;
// use SortOrdered for ordered element types.
func (m *Mutable[T]) Sort(compare func(a, b T) int) []T {
	if compare == nil {
		panic("reactive: Mutable.Sort called with a nil comparison")
	}
	m.apply(OpSort, func(s []T) []T {
		return seq.Sort(s, compare)
	})
	return m.cell.Peek()
}

// SortOrdered sorts m in ascending order.
func SortOrdered[T cmp.Ordered](m *Mutable[T]) []T {
	return m.Sort(cmp.Compare[T])
}

// Reverse reverses in place.
func (m *Mutable[T]) Reverse() []T {
	m.apply(OpReverse, seq.Reverse[T])
	return m.cell.Peek()
}

// Fill sets elements in [start, end) to value. Both bounds are optional.
func (m *Mutable[T]) Fill(value T, startEnd ...int) []T {
	m.apply(OpFill, func(s []T) []T {
		return seq.Fill(s, value, startEnd...)
	})
	return m.cell.Peek()
}

// CopyWithin copies the elements in [start, end) to target.
func (m *Mutable[T]) CopyWithin(target int, startEnd ...int) []T {
	m.apply(OpCopyWithin, func(s []T) []T {
		return seq.CopyWithin(s, target, startEnd...)
	})
	return m.cell.Peek()
}
