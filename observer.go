package reactive

import "github.com/giovanni1707/DOMHelpers-Reactive-sub000/internal"

// Observer receives runtime events. See package observer for
// Prometheus and OpenTelemetry implementations.
type Observer = internal.Observer

// Observers fans events out to each non-nil observer.
func Observers(observers ...Observer) Observer {
	return internal.Observers(observers...)
}
