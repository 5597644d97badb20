package internal

import (
	"errors"
	"runtime/debug"
	"time"
)

type EffectType int

const (
	EffectUser EffectType = iota
	EffectComputed
)

func (t EffectType) String() string {
	switch t {
	case EffectUser:
		return "user"
	case EffectComputed:
		return "computed"
	default:
		return "unknown"
	}
}

type Effect struct {
	rt   *Runtime
	id   uint64
	kind EffectType

	fn func()

	// cells read during the current (or most recent) run
	deps map[*Cell]*DependencyLink

	// registered with the effect itself, runs once on destroy
	onDestroy func()

	// registered during a run with OnCleanup, runs before the next run
	cleanups []func()

	// effects, computeds and scopes created during the current run
	children []Destroyer

	scope *Scope

	active bool
	queued bool
	runs   uint64

	computed *Computed
}

func (r *Runtime) newEffect(kind EffectType, fn func()) *Effect {
	return &Effect{
		rt:     r,
		id:     r.nextID(),
		kind:   kind,
		fn:     fn,
		deps:   make(map[*Cell]*DependencyLink),
		scope:  r.tracker.CurrentScope(),
		active: true,
	}
}

// NewEffect registers fn and runs it once to seed its dependencies.
// onDestroy, when set, is called once when the effect is destroyed.
func (r *Runtime) NewEffect(fn func(), onDestroy func()) *Effect {
	e := r.newEffect(EffectUser, fn)
	e.onDestroy = onDestroy

	r.adopt(e)
	r.scheduler.Hold(e.run)

	return e
}

func (e *Effect) ID() uint64 { return e.id }

func (e *Effect) Kind() EffectType { return e.kind }

func (e *Effect) Active() bool { return e.active }

// Runs counts how many times the computation started.
func (e *Effect) Runs() uint64 { return e.runs }

// Dependencies returns the cells read during the most recent run.
func (e *Effect) Dependencies() []*Cell {
	cells := make([]*Cell, 0, len(e.deps))
	for c := range e.deps {
		cells = append(cells, c)
	}
	return cells
}

func (e *Effect) dependsOn(c *Cell) bool {
	_, ok := e.deps[c]
	return ok
}

func (e *Effect) link(c *Cell) {
	if !e.active {
		return
	}
	if _, ok := e.deps[c]; ok {
		return
	}

	link := &DependencyLink{dep: c, sub: e}
	e.deps[c] = link
	c.addSubLink(link)
}

func (e *Effect) clearDeps() {
	for c, link := range e.deps {
		c.removeSubLink(link)
	}
	clear(e.deps)
}

// reset tears down everything the previous run produced.
func (e *Effect) reset() {
	children := e.children
	e.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Destroy()
	}

	if cleanups := e.cleanups; len(cleanups) > 0 {
		e.cleanups = nil
		for _, cleanup := range cleanups {
			e.guard(cleanup)
		}
	}

	e.clearDeps()
}

func (e *Effect) run() {
	if !e.active {
		return
	}

	start := time.Now()

	e.reset()
	e.runs++
	e.rt.tracker.RunWithEffect(e, e.execute)

	e.rt.effectRan(e, time.Since(start))
}

func (e *Effect) execute() {
	defer e.recoverRun()
	e.fn()
}

// guard runs user cleanup code untracked. A panic is reported like a failed
// run and does not stop the caller.
func (e *Effect) guard(fn func()) {
	defer e.recoverRun()
	e.rt.tracker.RunUntracked(fn)
}

func (e *Effect) recoverRun() {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, ErrTrackingImbalance) {
		panic(r)
	}
	e.rt.report(e.scope, "effect failed", &EffectError{EffectID: e.id, Value: r, Stack: debug.Stack()}, "effect", e.id)
}

// invalidate runs a computed's hidden effect synchronously, outside the queue.
func (e *Effect) invalidate() {
	e.run()
}

// OnCleanup registers fn to run before the next run and on destroy.
func (e *Effect) OnCleanup(fn func()) {
	if !e.active {
		return
	}
	e.cleanups = append(e.cleanups, fn)
}

// Destroy detaches the effect from its dependencies and stops future runs.
// Calling it again is a no-op.
func (e *Effect) Destroy() {
	if !e.active {
		return
	}
	e.active = false

	e.reset()

	if fn := e.onDestroy; fn != nil {
		e.onDestroy = nil
		e.guard(fn)
	}

	e.rt.scheduler.Remove(e)
}

func (e *Effect) adopt(child Destroyer) {
	if !e.active {
		child.Destroy()
		return
	}
	e.children = append(e.children, child)
}

func (e *Effect) ownerScope() *Scope {
	return e.scope
}
