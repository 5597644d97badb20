package internal

import (
	"fmt"
	"log/slog"
	"time"
)

// Runtime is the reactive context of one goroutine: its tracked-effect
// stack, its scheduler and the sinks for errors and diagnostics.
type Runtime struct {
	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler

	logger   *slog.Logger
	reporter func(error)
	observer Observer

	lastID uint64

	stats Stats
}

// Stats are cumulative counters of a runtime.
type Stats struct {
	Flushes        uint64
	EffectRuns     uint64
	Invalidations  uint64
	EffectErrors   uint64
	WritesDeferred uint64
	WritesDropped  uint64
	Pending        int
}

func NewRuntime() *Runtime {
	r := &Runtime{
		tracker: NewTracker(),
		batcher: NewBatcher(),
		logger:  slog.Default(),
	}
	r.scheduler = NewScheduler(r)

	return r
}

func (r *Runtime) Tracker() *Tracker { return r.tracker }

func (r *Runtime) Scheduler() *Scheduler { return r.scheduler }

func (r *Runtime) Batcher() *Batcher { return r.batcher }

func (r *Runtime) Logger() *slog.Logger { return r.logger }

func (r *Runtime) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	r.logger = l
}

// SetReporter replaces the sink for effect failures that no scope handles.
// nil restores the default, which logs at error level.
func (r *Runtime) SetReporter(fn func(error)) { r.reporter = fn }

func (r *Runtime) SetObserver(o Observer) { r.observer = o }

func (r *Runtime) Stats() Stats {
	s := r.stats
	s.Flushes = r.scheduler.flushes
	s.Pending = r.scheduler.live
	return s
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn on the running effect, or as a teardown of the
// current scope when no effect is running.
func (r *Runtime) OnCleanup(fn func()) {
	switch owner := r.tracker.CurrentOwner().(type) {
	case *Effect:
		owner.OnCleanup(fn)
	case *Scope:
		owner.RegisterTeardown(fn)
	default:
		r.logger.Warn("cleanup registered outside an effect or scope, ignoring")
	}
}

func (r *Runtime) OnSettled(fn func()) {
	r.scheduler.OnSettled(fn)
}

func (r *Runtime) nextID() uint64 {
	r.lastID++
	return r.lastID
}

func (r *Runtime) adopt(child Destroyer) {
	if owner := r.tracker.CurrentOwner(); owner != nil {
		owner.adopt(child)
	}
}

// report hands err to the nearest error handler above scope, then to the
// reporter, then to the logger.
func (r *Runtime) report(scope *Scope, msg string, err error, attrs ...any) {
	r.stats.EffectErrors++
	if r.observer != nil {
		r.observer.EffectFailed(err)
	}

	if scope != nil && scope.catch(err) {
		return
	}

	if r.reporter != nil {
		r.reporter(err)
		return
	}

	r.logger.Error(msg, append(attrs, "error", err)...)
}

// effectRan counts a completed run. Computed invalidations only mark a value
// dirty and are counted apart from effect runs.
func (r *Runtime) effectRan(e *Effect, d time.Duration) {
	if e.kind == EffectComputed {
		r.stats.Invalidations++
	} else {
		r.stats.EffectRuns++
	}
	if r.observer != nil {
		r.observer.EffectRan(e.kind.String(), d)
	}
}

func (r *Runtime) flushStarted() {
	if r.observer != nil {
		r.observer.FlushStarted()
	}
}

func (r *Runtime) flushFinished(ran int, d time.Duration) {
	if r.observer != nil {
		r.observer.FlushFinished(ran, d)
	}
}

func (r *Runtime) deferredWrite(c *Cell, running *Effect) {
	r.stats.WritesDeferred++
	if r.observer != nil {
		r.observer.WriteDeferred()
	}
	r.logger.Debug("reentrant write deferred", "cell", c.id, "effect", running.id, "error", ErrReentrantWrite)
}

func (r *Runtime) droppedWrite(c *Cell) {
	r.stats.WritesDropped++
	if r.observer != nil {
		r.observer.WriteDropped()
	}
	r.logger.Warn("write to destroyed scope dropped", "scope", c.scope.id, "cell", c.id,
		"error", fmt.Errorf("%w %s", ErrDestroyedScope, c.scope.id))
}
