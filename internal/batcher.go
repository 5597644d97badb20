package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, updates are queued until the outermost batch is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Depth() int {
	return b.depth
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Batch runs fn with every notification deferred until the outermost batch closes.
// Each affected effect then runs once, observing the final state.
func (r *Runtime) Batch(fn func()) {
	switch r.scheduler.mode {
	case ModeFlushing:
		// writes are already deferred to the running drain
		fn()
		return
	case ModeIdle:
		r.scheduler.mode = ModeBatchOpen
	}

	r.batcher.Batch(fn, r.scheduler.drain)
}
