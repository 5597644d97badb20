package internal

import (
	"errors"
	"iter"
	"runtime/debug"

	"github.com/google/uuid"
)

// Scope groups effects, computeds, child scopes and teardowns that die together.
type Scope struct {
	rt *Runtime
	id string

	parent *Scope

	// run first on destroy, while owned state is still live
	hooks []func()

	// run in reverse registration order
	teardowns []func()

	// effect handlers, nearest scope wins
	catchers []func(error)

	owned []Destroyer

	destroying bool
	destroyed  bool
}

func (r *Runtime) NewScope() *Scope {
	s := &Scope{
		rt:     r,
		id:     uuid.NewString(),
		parent: r.tracker.CurrentScope(),
	}

	r.adopt(s)

	return s
}

func (s *Scope) ID() string { return s.id }

func (s *Scope) Parent() *Scope { return s.parent }

func (s *Scope) Destroyed() bool { return s.destroyed }

// Run calls fn with s as the current scope: effects, computeds, cells and
// scopes created inside fn belong to s.
func (s *Scope) Run(fn func()) {
	s.rt.tracker.RunWithOwner(s, fn)
}

// Own hands an existing effect (or any Destroyer) to the scope.
func (s *Scope) Own(d Destroyer) {
	s.adopt(d)
}

// RegisterTeardown appends fn to the teardown list.
func (s *Scope) RegisterTeardown(fn func()) {
	if s.destroyed {
		s.rt.logger.Warn("teardown registered on destroyed scope, running now", "scope", s.id)
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
}

// OnDestroy adds a hook that runs before any teardown.
func (s *Scope) OnDestroy(fn func()) {
	if s.destroyed {
		return
	}
	s.hooks = append(s.hooks, fn)
}

// OnError handles failures of effects owned by this scope or its children.
func (s *Scope) OnError(fn func(error)) {
	s.catchers = append(s.catchers, fn)
}

// Owned iterates the effects and scopes the scope currently owns.
func (s *Scope) Owned() iter.Seq[Destroyer] {
	return func(yield func(Destroyer) bool) {
		for _, d := range s.owned {
			if !yield(d) {
				return
			}
		}
	}
}

// Destroy runs the OnDestroy hooks, then teardowns last-first, then destroys
// everything owned. A panic in any step is reported and the rest still runs.
// Later calls are no-ops.
func (s *Scope) Destroy() {
	if s.destroyed || s.destroying {
		return
	}
	s.destroying = true
	defer func() {
		s.destroyed = true
		s.destroying = false
	}()

	hooks := s.hooks
	s.hooks = nil
	for _, hook := range hooks {
		s.guard(hook)
	}

	teardowns := s.teardowns
	s.teardowns = nil
	for i := len(teardowns) - 1; i >= 0; i-- {
		s.guard(teardowns[i])
	}

	owned := s.owned
	s.owned = nil
	for i := len(owned) - 1; i >= 0; i-- {
		s.guard(owned[i].Destroy)
	}
}

func (s *Scope) guard(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && errors.Is(err, ErrTrackingImbalance) {
			panic(r)
		}
		s.rt.report(s, "scope teardown failed",
			&TeardownError{ScopeID: s.id, Value: r, Stack: debug.Stack()}, "scope", s.id)
	}()

	s.rt.tracker.RunUntracked(fn)
}

func (s *Scope) adopt(child Destroyer) {
	if s.destroyed {
		s.rt.logger.Warn("creation in destroyed scope, destroying immediately", "scope", s.id)
		child.Destroy()
		return
	}
	s.owned = append(s.owned, child)
}

func (s *Scope) ownerScope() *Scope {
	return s
}

// catch hands err to the nearest scope with an error handler.
func (s *Scope) catch(err error) bool {
	for scope := s; scope != nil; scope = scope.parent {
		if len(scope.catchers) == 0 {
			continue
		}
		for _, catcher := range scope.catchers {
			catcher(err)
		}
		return true
	}
	return false
}
