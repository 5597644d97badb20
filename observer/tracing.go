package observer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	reactive "github.com/giovanni1707/DOMHelpers-Reactive-sub000"
)

const defaultTracerName = "reactive"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "reactive").
	TracerName string

	// Provider supplies the tracer. If nil, the global provider is used.
	Provider trace.TracerProvider

	// Context is the parent of every flush span (default: context.Background()).
	Context context.Context
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = provider
	}
}

// WithParentContext sets the context flush spans are started from.
func WithParentContext(ctx context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Context = ctx
	}
}

// Tracing starts one "reactive.flush" span per scheduler flush. Effect
// failures are recorded on the span of the flush they happen in, or on a
// short "reactive.effect" span when no flush is open.
type Tracing struct {
	tracer trace.Tracer
	ctx    context.Context

	span     trace.Span
	deferred int
	dropped  int
}

var _ reactive.Observer = (*Tracing)(nil)

func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &Tracing{
		tracer: provider.Tracer(config.TracerName),
		ctx:    config.Context,
	}
}

func (t *Tracing) FlushStarted() {
	if t.span != nil {
		t.span.End()
	}

	_, t.span = t.tracer.Start(t.ctx, "reactive.flush", trace.WithSpanKind(trace.SpanKindInternal))
	t.deferred, t.dropped = 0, 0
}

func (t *Tracing) FlushFinished(ran int, d time.Duration) {
	if t.span == nil {
		return
	}

	t.span.SetAttributes(
		attribute.Int("reactive.effects", ran),
		attribute.Int("reactive.writes_deferred", t.deferred),
		attribute.Int("reactive.writes_dropped", t.dropped),
		attribute.Float64("reactive.duration_ms", float64(d)/float64(time.Millisecond)),
	)
	t.span.End()
	t.span = nil
}

func (t *Tracing) EffectRan(kind string, d time.Duration) {}

func (t *Tracing) EffectFailed(err error) {
	span := t.span
	if span == nil {
		_, span = t.tracer.Start(t.ctx, "reactive.effect")
		defer span.End()
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (t *Tracing) WriteDeferred() { t.deferred++ }

func (t *Tracing) WriteDropped() { t.dropped++ }
