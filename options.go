package reactive

import (
	"log/slog"
	"reflect"

	"github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal"
)

// Equality decides whether a write leaves a cell unchanged.
type Equality[T any] func(a, b T) bool

// Identity compares with == where the type allows it, and by deep
// comparison otherwise. It is the default.
func Identity[T any]() Equality[T] {
	return func(a, b T) bool { return internal.DefaultEqual(a, b) }
}

// Structural compares values with reflect.DeepEqual, so a fresh slice or
// map with the same contents counts as unchanged.
func Structural[T any]() Equality[T] {
	return func(a, b T) bool { return reflect.DeepEqual(a, b) }
}

// Always makes every write notify, even with an equal value.
func Always[T any]() Equality[T] {
	return func(a, b T) bool { return false }
}

func (eq Equality[T]) erase() internal.EqualFunc {
	if eq == nil {
		return nil
	}

	return func(a, b any) bool {
		return eq(as[T](a), as[T](b))
	}
}

type cellConfig[T any] struct {
	equal Equality[T]
}

type CellOption[T any] func(*cellConfig[T])

// WithEquality sets the policy a cell uses to skip redundant writes.
func WithEquality[T any](eq Equality[T]) CellOption[T] {
	return func(c *cellConfig[T]) {
		c.equal = eq
	}
}

type effectConfig struct {
	cleanup func()
}

type EffectOption func(*effectConfig)

// WithCleanup registers fn to run once when the effect is destroyed.
func WithCleanup(fn func()) EffectOption {
	return func(c *effectConfig) {
		c.cleanup = fn
	}
}

// Option configures a Runtime.
type Option func(*internal.Runtime)

// WithLogger sets the logger used for warnings and unhandled effect failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *internal.Runtime) {
		r.SetLogger(l)
	}
}

// WithErrorReporter receives effect failures that no Scope handled.
func WithErrorReporter(fn func(error)) Option {
	return func(r *internal.Runtime) {
		r.SetReporter(fn)
	}
}

// WithObserver installs hooks for flushes, effect runs and failures.
func WithObserver(o Observer) Option {
	return func(r *internal.Runtime) {
		r.SetObserver(o)
	}
}

// WithFlushLimit bounds how many effect runs one flush may perform.
// Zero or less disables the bound.
func WithFlushLimit(n int) Option {
	return func(r *internal.Runtime) {
		r.Scheduler().SetLimit(n)
	}
}
