package internal

import "time"

// Observer receives engine events. Implementations must not write cells.
type Observer interface {
	FlushStarted()
	FlushFinished(ran int, d time.Duration)
	EffectRan(kind string, d time.Duration)
	EffectFailed(err error)
	WriteDeferred()
	WriteDropped()
}

type multiObserver []Observer

// Observers fans events out to each observer in order.
func Observers(observers ...Observer) Observer {
	flat := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o == nil {
			continue
		}
		if m, ok := o.(multiObserver); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, o)
	}
	return flat
}

func (m multiObserver) FlushStarted() {
	for _, o := range m {
		o.FlushStarted()
	}
}

func (m multiObserver) FlushFinished(ran int, d time.Duration) {
	for _, o := range m {
		o.FlushFinished(ran, d)
	}
}

func (m multiObserver) EffectRan(kind string, d time.Duration) {
	for _, o := range m {
		o.EffectRan(kind, d)
	}
}

func (m multiObserver) EffectFailed(err error) {
	for _, o := range m {
		o.EffectFailed(err)
	}
}

func (m multiObserver) WriteDeferred() {
	for _, o := range m {
		o.WriteDeferred()
	}
}

func (m multiObserver) WriteDropped() {
	for _, o := range m {
		o.WriteDropped()
	}
}
