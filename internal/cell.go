package internal

// EqualFunc decides whether a write changes a cell's value.
type EqualFunc func(a, b any) bool

// Cell is the type-erased reactive state holder.
type Cell struct {
	rt *Runtime
	id uint64

	value   any
	version uint64
	equal   EqualFunc

	// owning scope, nil for cells created outside any scope
	scope *Scope

	subsHead *DependencyLink
	subCount int

	// set once by the sequence instrumentation, see Instrumented
	instrumented any
}

func (r *Runtime) NewCell(initial any, equal EqualFunc) *Cell {
	if equal == nil {
		equal = DefaultEqual
	}

	return &Cell{
		rt:    r,
		id:    r.nextID(),
		value: initial,
		equal: equal,
		scope: r.tracker.CurrentScope(),
	}
}

func (c *Cell) ID() uint64 { return c.id }

func (c *Cell) Version() uint64 { return c.version }

func (c *Cell) Runtime() *Runtime { return c.rt }

// Read returns the current value, tracking the dependency if within an effect.
func (c *Cell) Read() any {
	c.rt.tracker.Track(c)
	return c.value
}

// Peek returns the current value without tracking.
func (c *Cell) Peek() any {
	return c.value
}

// Write stores v and notifies subscribers unless v equals the current value.
func (c *Cell) Write(v any) {
	if !c.writable() {
		return
	}

	if c.equal(c.value, v) {
		return
	}

	c.value = v
	c.version++
	c.notify()
}

// NotifyMutated bumps the version and notifies regardless of equality.
// Used after the value was mutated in place.
func (c *Cell) NotifyMutated() {
	if !c.writable() {
		return
	}

	c.version++
	c.notify()
}

// Mutate replaces the value with fn(value) and always notifies.
func (c *Cell) Mutate(fn func(any) any) {
	if !c.writable() {
		return
	}

	c.value = fn(c.value)
	c.version++
	c.notify()
}

// Replace swaps the stored value without notifying anyone.
func (c *Cell) Replace(v any) {
	if !c.writable() {
		return
	}
	c.value = v
}

// Instrumented returns the marker set by MarkInstrumented, or nil.
func (c *Cell) Instrumented() any {
	return c.instrumented
}

// MarkInstrumented records the instrumentation wrapper for this cell.
// It reports false, leaving the first marker in place, when one is already set.
func (c *Cell) MarkInstrumented(marker any) bool {
	if c.instrumented != nil {
		return false
	}
	c.instrumented = marker
	return true
}

// Subscribers returns the effects currently subscribed, in subscription order.
func (c *Cell) Subscribers() []*Effect {
	subs := make([]*Effect, 0, c.subCount)
	for link := c.subsHead; link != nil; link = link.nextSub {
		subs = append(subs, link.sub)
	}
	return subs
}

func (c *Cell) writable() bool {
	if c.scope != nil && c.scope.Destroyed() {
		c.rt.droppedWrite(c)
		return false
	}
	return true
}

func (c *Cell) notify() {
	if c.subsHead == nil {
		return
	}

	if e := c.rt.tracker.runningDependent(c); e != nil {
		c.rt.deferredWrite(c, e)
	}

	// snapshot: invalidation and effect runs relink while we iterate
	subs := c.Subscribers()

	// computeds are invalidated inline so any effect reading them later in
	// this flush recomputes instead of seeing a stale cache
	c.rt.scheduler.Hold(func() {
		for _, sub := range subs {
			if sub.kind == EffectComputed {
				sub.invalidate()
				continue
			}
			c.rt.scheduler.insert(sub)
		}
	})
}
