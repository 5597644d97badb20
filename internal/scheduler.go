package internal

import (
	"fmt"
	"time"

	"github.com/eapache/queue"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeBatchOpen
	ModeFlushing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBatchOpen:
		return "batch"
	case ModeFlushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// DefaultFlushLimit bounds the effect runs of a single drain.
const DefaultFlushLimit = 100000

type Scheduler struct {
	rt *Runtime

	mode Mode

	// FIFO of queued effects. Destroyed effects are dropped lazily:
	// Remove clears the queued flag and drain skips the stale entry.
	pending *queue.Queue
	live    int

	settled *SettledQueue

	// max effect runs per drain, 0 disables the guard
	limit int

	// incremented each time a drain completes
	flushes uint64
}

func NewScheduler(rt *Runtime) *Scheduler {
	return &Scheduler{
		rt:      rt,
		pending: queue.New(),
		settled: NewSettledQueue(),
		limit:   DefaultFlushLimit,
	}
}

func (s *Scheduler) Mode() Mode { return s.mode }

// Pending is the number of effects waiting to run.
func (s *Scheduler) Pending() int { return s.live }

func (s *Scheduler) Flushes() uint64 { return s.flushes }

func (s *Scheduler) SetLimit(n int) { s.limit = n }

// Enqueue schedules e. Outside a batch or flush it drains right away.
func (s *Scheduler) Enqueue(e *Effect) {
	s.Hold(func() { s.insert(e) })
}

// EnqueueAll schedules every effect, then drains once if the scheduler was idle.
func (s *Scheduler) EnqueueAll(effects []*Effect) {
	if len(effects) == 0 {
		return
	}

	s.Hold(func() {
		for _, e := range effects {
			s.insert(e)
		}
	})
}

// Hold runs fn with enqueues deferred. If the scheduler was idle,
// it drains everything fn queued before returning.
func (s *Scheduler) Hold(fn func()) {
	if s.mode != ModeIdle {
		fn()
		return
	}

	s.mode = ModeFlushing

	done := false
	defer func() {
		if !done {
			s.reset()
		}
	}()

	fn()
	done = true

	s.drain()
}

// Remove drops e from the pending set if it is queued.
func (s *Scheduler) Remove(e *Effect) {
	if e.queued {
		e.queued = false
		s.live--
	}
}

func (s *Scheduler) insert(e *Effect) {
	if !e.active || e.queued {
		return
	}

	e.queued = true
	s.pending.Add(e)
	s.live++
}

// drain runs queued effects in FIFO order until none are left.
// Effects queued meanwhile join the same work queue.
func (s *Scheduler) drain() {
	s.mode = ModeFlushing
	s.rt.flushStarted()

	defer func() {
		if r := recover(); r != nil {
			s.reset()
			panic(r)
		}
	}()

	start := time.Now()
	ran := 0

	for s.pending.Length() > 0 {
		e := s.pending.Remove().(*Effect)
		if !e.queued {
			continue
		}
		e.queued = false
		s.live--

		if s.limit > 0 && ran >= s.limit {
			s.clear()
			s.rt.report(e.scope, "flush aborted", fmt.Errorf("%w: %d effect runs in one flush", ErrFlushLimit, ran), "effect", e.id)
			break
		}

		ran++
		e.run()
	}

	s.flushes++
	s.mode = ModeIdle
	s.rt.flushFinished(ran, time.Since(start))

	s.settled.Run()
}

func (s *Scheduler) clear() {
	for s.pending.Length() > 0 {
		e := s.pending.Remove().(*Effect)
		e.queued = false
	}
	s.live = 0
}

func (s *Scheduler) reset() {
	s.clear()
	s.mode = ModeIdle
	s.rt.batcher.depth = 0
}

// OnSettled queues fn to run once after the next drain completes.
func (s *Scheduler) OnSettled(fn func()) {
	s.settled.Enqueue(fn)
}
