package internal

import "fmt"

// Computed is a lazily derived value. Its hidden effect never recomputes:
// when an input changes it only marks the value dirty and notifies readers.
// The derivation runs again on the next Read.
type Computed struct {
	cell   *Cell
	effect *Effect

	derive func() any

	dirty      bool
	computing  bool
	recomputes uint64
}

func (r *Runtime) NewComputed(derive func() any) *Computed {
	c := &Computed{
		cell:   r.NewCell(nil, NeverEqual),
		derive: derive,
		dirty:  true,
	}

	c.effect = r.newEffect(EffectComputed, c.markDirty)
	c.effect.computed = c

	r.adopt(c)

	return c
}

// Read returns the cached value, recomputing it first when dirty.
// A destroyed computed keeps returning its last value.
func (c *Computed) Read() any {
	if c.computing {
		panic(fmt.Errorf("%w (computed %d)", ErrComputedCycle, c.cell.id))
	}

	c.cell.rt.tracker.Track(c.cell)

	if c.dirty && c.effect.active {
		c.recompute()
	}

	return c.cell.value
}

func (c *Computed) Peek() any {
	var v any
	c.cell.rt.tracker.RunUntracked(func() { v = c.Read() })
	return v
}

func (c *Computed) Dirty() bool { return c.dirty }

// Recomputes counts how many times the derivation ran.
func (c *Computed) Recomputes() uint64 { return c.recomputes }

func (c *Computed) Cell() *Cell { return c.cell }

func (c *Computed) Effect() *Effect { return c.effect }

func (c *Computed) Destroy() {
	c.effect.Destroy()
}

func (c *Computed) recompute() {
	c.computing = true
	done := false
	defer func() {
		c.computing = false
		if !done {
			c.dirty = true
		}
	}()

	e := c.effect
	e.reset()

	// cleared before deriving so an invalidation raised by the derivation sticks
	c.dirty = false
	c.recomputes++

	var value any
	e.rt.tracker.RunWithEffect(e, func() {
		value = c.derive()
	})

	c.cell.value = value
	c.cell.version++
	done = true
}

func (c *Computed) markDirty() {
	c.dirty = true
	c.cell.notify()
}
