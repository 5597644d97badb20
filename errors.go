package reactive

import "github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal"

var (
	ErrTrackingImbalance = internal.ErrTrackingImbalance
	ErrDestroyedScope    = internal.ErrDestroyedScope
	ErrEffectExecution   = internal.ErrEffectExecution
	ErrReentrantWrite    = internal.ErrReentrantWrite
	ErrFlushLimit        = internal.ErrFlushLimit
	ErrComputedCycle     = internal.ErrComputedCycle
	ErrTeardownFailed    = internal.ErrTeardownFailed
)

// EffectError is reported when an effect panics.
type EffectError = internal.EffectError

// TeardownError is reported when a scope's destroy hook, teardown or owned
// value panics.
type TeardownError = internal.TeardownError
