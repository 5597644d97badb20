package internal

// Owner adopts the effects, computeds and scopes created while it is current.
type Owner interface {
	adopt(child Destroyer)
	ownerScope() *Scope
}

// Destroyer is anything an Owner can tear down.
type Destroyer interface {
	Destroy()
}

// Tracker holds the stack of running effects and the current owner.
// A nil frame on the stack means reads are untracked.
type Tracker struct {
	stack []*Effect

	currentOwner Owner // for lifecycle/cleanup tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		stack: make([]*Effect, 0, 8),
	}
}

// Current returns the effect that reads should be attributed to, or nil.
func (t *Tracker) Current() *Effect {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Depth is the number of frames on the stack, untracked frames included.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

func (t *Tracker) push(e *Effect) {
	t.stack = append(t.stack, e)
}

func (t *Tracker) pop(e *Effect) {
	n := len(t.stack)
	if n == 0 {
		panic(imbalance("pop of effect %d on empty stack", idOf(e)))
	}
	if top := t.stack[n-1]; top != e {
		panic(imbalance("pop of effect %d but effect %d is on top", idOf(e), idOf(top)))
	}
	t.stack[n-1] = nil
	t.stack = t.stack[:n-1]
}

// RunWithEffect runs fn with e as the tracked context and e as the current owner.
func (t *Tracker) RunWithEffect(e *Effect, fn func()) {
	prevOwner := t.currentOwner
	t.currentOwner = e
	t.push(e)

	defer func() {
		t.pop(e)
		t.currentOwner = prevOwner
	}()

	fn()
}

// RunWithOwner runs fn with owner adopting everything created inside it.
func (t *Tracker) RunWithOwner(owner Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	t.push(nil)
	defer t.pop(nil)

	fn()
}

// Track registers c as a dependency of the running effect, if any.
func (t *Tracker) Track(c *Cell) {
	if e := t.Current(); e != nil {
		e.link(c)
	}
}

func (t *Tracker) CurrentOwner() Owner {
	return t.currentOwner
}

// CurrentScope is the scope that owns whatever is being created right now.
func (t *Tracker) CurrentScope() *Scope {
	if t.currentOwner == nil {
		return nil
	}
	return t.currentOwner.ownerScope()
}

// runningDependent returns the innermost running effect that reads c, or nil.
func (t *Tracker) runningDependent(c *Cell) *Effect {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if e := t.stack[i]; e != nil && e.dependsOn(c) {
			return e
		}
	}
	return nil
}

func idOf(e *Effect) uint64 {
	if e == nil {
		return 0
	}
	return e.id
}
