package reactive

import "github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal"

// Runtime is an isolated reactive context. Cells and effects created while
// it is bound belong to it for good.
type Runtime struct {
	rt *internal.Runtime
}

type Stats = internal.Stats

// NewRuntime creates a runtime that is not bound to any goroutine.
func NewRuntime(opts ...Option) *Runtime {
	rt := internal.NewRuntime()
	for _, opt := range opts {
		opt(rt)
	}

	return &Runtime{rt}
}

// Run binds the runtime to the calling goroutine while fn runs.
func (r *Runtime) Run(fn func()) {
	restore := internal.Bind(r.rt)
	defer restore()

	fn()
}

// Configure applies opts to the runtime after creation.
func (r *Runtime) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r.rt)
	}
}

func (r *Runtime) Stats() Stats {
	return r.rt.Stats()
}

// Configure adjusts the calling goroutine's default runtime.
func Configure(opts ...Option) {
	rt := internal.GetRuntime()
	for _, opt := range opts {
		opt(rt)
	}
}

// CurrentStats returns the counters of the calling goroutine's runtime.
func CurrentStats() Stats {
	return internal.GetRuntime().Stats()
}

// Release drops the calling goroutine's default runtime. The next reactive
// call on the goroutine starts with a fresh one.
func Release() {
	internal.Release()
}
