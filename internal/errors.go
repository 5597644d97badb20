package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrTrackingImbalance means the tracked-context stack was popped out of order.
	// It is always a bug in the engine and is raised as a panic.
	ErrTrackingImbalance = errors.New("reactive: tracking stack imbalance")

	// ErrDestroyedScope is reported when a cell owned by a destroyed scope is written.
	ErrDestroyedScope = errors.New("reactive: write to destroyed scope")

	// ErrEffectExecution matches every *EffectError.
	ErrEffectExecution = errors.New("reactive: effect execution failed")

	// ErrReentrantWrite marks a write to a cell whose dependent is currently running.
	ErrReentrantWrite = errors.New("reactive: reentrant write deferred")

	// ErrFlushLimit is reported when a single drain runs more effects than the flush limit allows.
	ErrFlushLimit = errors.New("reactive: flush limit exceeded")

	// ErrTeardownFailed matches every *TeardownError.
	ErrTeardownFailed = errors.New("reactive: scope teardown failed")

	// ErrComputedCycle is raised when a computed value is read while it is being derived.
	ErrComputedCycle = errors.New("reactive: computed read during its own derivation")
)

// EffectError wraps a panic recovered from an effect's computation.
type EffectError struct {
	EffectID uint64
	Value    any
	Stack    []byte
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("reactive: effect %d panicked: %v", e.EffectID, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *EffectError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func (e *EffectError) Is(target error) bool {
	return target == ErrEffectExecution
}

// TeardownError wraps a panic recovered from a scope's destroy hook,
// teardown or owned value.
type TeardownError struct {
	ScopeID string
	Value   any
	Stack   []byte
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("reactive: scope %s teardown panicked: %v", e.ScopeID, e.Value)
}

func (e *TeardownError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func (e *TeardownError) Is(target error) bool {
	return target == ErrTeardownFailed
}

func imbalance(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrTrackingImbalance}, args...)...)
}
