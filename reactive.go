// Package reactive is a dependency-tracking and effect-scheduling engine.
//
// Cells hold state. Effects read cells and re-run when any of them change.
// Computed values derive from cells lazily. Batch coalesces writes so each
// affected effect runs once, and Scope tears a group of effects down together.
//
// Every goroutine has its own runtime; values created on one goroutine
// must only be used from that goroutine.
package reactive

import "github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Cell[T any] struct {
	cell *internal.Cell
}

// NewCell creates a read/write cell. Writes equal to the current value are
// ignored; see WithEquality for other policies.
func NewCell[T any](initial T, opts ...CellOption[T]) *Cell[T] {
	cfg := cellConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cell[T]{
		internal.GetRuntime().NewCell(initial, cfg.equal.erase()),
	}
}

// Read the current value of the cell, tracking the dependency if within an effect.
func (c *Cell[T]) Read() T {
	return as[T](c.cell.Read())
}

// Peek reads the current value without tracking it.
func (c *Cell[T]) Peek() T {
	return as[T](c.cell.Peek())
}

// Write a new value to the cell, triggering updates to any dependents.
func (c *Cell[T]) Write(v T) {
	c.cell.Write(v)
}

// Update writes fn applied to the current (untracked) value.
func (c *Cell[T]) Update(fn func(T) T) {
	c.cell.Write(fn(c.Peek()))
}

// Version is bumped by every write that notifies.
func (c *Cell[T]) Version() uint64 {
	return c.cell.Version()
}

// NotifyMutated tells dependents the value was changed in place.
func (c *Cell[T]) NotifyMutated() {
	c.cell.NotifyMutated()
}

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a lazily derived value. derive runs on the first Read
// and again on the first Read after any of its inputs change.
func NewComputed[T any](derive func() T) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return derive()
		}),
	}
}

// Read the derived value, tracking the dependency if within an effect.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Peek reads the derived value without tracking it.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Peek())
}

// Destroy stops tracking inputs; Read keeps returning the last value.
func (c *Computed[T]) Destroy() {
	c.computed.Destroy()
}

type Effect struct {
	effect *internal.Effect
}

// NewEffect runs fn now and again whenever a cell it read changes.
func NewEffect(fn func(), opts ...EffectOption) *Effect {
	cfg := effectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Effect{
		internal.GetRuntime().NewEffect(fn, cfg.cleanup),
	}
}

// Destroy the effect. It will not run again. Safe to call more than once.
func (e *Effect) Destroy() { e.effect.Destroy() }

// Active reports whether the effect has not been destroyed.
func (e *Effect) Active() bool { return e.effect.Active() }

// Batch batches multiple cell writes into a single update cycle,
// instead of triggering updates after each write.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers fn on the running effect; it runs before the effect's
// next run and when it is destroyed. Outside an effect it becomes a teardown
// of the current scope.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// OnSettled runs fn once after the next flush has run every queued effect.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

type Scope struct {
	scope *internal.Scope
}

// NewScope creates a component scope. If called inside another scope's Run
// or an effect, the new scope is owned by it.
func NewScope() *Scope {
	return &Scope{
		internal.GetRuntime().NewScope(),
	}
}

// Run a function within the scope. Each effect, computed, cell or scope
// created within it belongs to this scope.
func (s *Scope) Run(fn func()) { s.scope.Run(fn) }

// Own hands an effect created elsewhere to the scope.
func (s *Scope) Own(d interface{ Destroy() }) { s.scope.Own(d) }

// RegisterTeardown adds fn to the teardowns, which run last-registered first.
func (s *Scope) RegisterTeardown(fn func()) { s.scope.RegisterTeardown(fn) }

// OnDestroy adds a hook that runs before the teardowns, while state is still live.
func (s *Scope) OnDestroy(fn func()) { s.scope.OnDestroy(fn) }

// OnError catches failures of effects owned by this scope.
// Without a handler failures go to the runtime's error reporter.
func (s *Scope) OnError(fn func(error)) { s.scope.OnError(fn) }

// Destroy the scope and everything it owns. Safe to call more than once.
func (s *Scope) Destroy() { s.scope.Destroy() }

// Destroyed reports whether Destroy has completed.
func (s *Scope) Destroyed() bool { return s.scope.Destroyed() }

// ID is a unique identifier used in diagnostics.
func (s *Scope) ID() string { return s.scope.ID() }
