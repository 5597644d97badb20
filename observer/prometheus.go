// Package observer provides reactive.Observer implementations backed by
// Prometheus metrics and OpenTelemetry traces.
package observer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	reactive "github.com/giovanni1707/DOMHelpers-Reactive-sub000"
)

// PrometheusConfig configures the Prometheus observer.
type PrometheusConfig struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// PrometheusOption configures the Prometheus observer.
type PrometheusOption func(*PrometheusConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration histogram buckets.
func WithBuckets(buckets []float64) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) PrometheusOption {
	return func(c *PrometheusConfig) {
		c.Registry = registry
	}
}

func defaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus records runtime events as Prometheus metrics.
//
// Metrics collected:
//   - reactive_flushes_total: Counter of completed flushes
//   - reactive_flush_duration_seconds: Histogram of flush duration
//   - reactive_effect_runs_total: Counter of effect runs by kind (user, computed)
//   - reactive_effect_errors_total: Counter of effect failures
//   - reactive_writes_deferred_total: Counter of reentrant writes deferred to the queue
//   - reactive_writes_dropped_total: Counter of writes to destroyed scopes
type Prometheus struct {
	flushes        prometheus.Counter
	flushDuration  prometheus.Histogram
	effectRuns     *prometheus.CounterVec
	effectErrors   prometheus.Counter
	writesDeferred prometheus.Counter
	writesDropped  prometheus.Counter
}

var _ reactive.Observer = (*Prometheus)(nil)

// NewPrometheus registers the metrics with the configured registry.
// It panics if they are already registered there.
func NewPrometheus(opts ...PrometheusOption) *Prometheus {
	config := defaultPrometheusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Prometheus{
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of completed scheduler flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Scheduler flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect runs",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		effectErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_errors_total",
			Help:        "Total number of effect failures",
			ConstLabels: config.ConstLabels,
		}),

		writesDeferred: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_deferred_total",
			Help:        "Total number of writes made while a dependent was running",
			ConstLabels: config.ConstLabels,
		}),

		writesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_dropped_total",
			Help:        "Total number of writes dropped because their scope was destroyed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (p *Prometheus) FlushStarted() {}

func (p *Prometheus) FlushFinished(ran int, d time.Duration) {
	p.flushes.Inc()
	p.flushDuration.Observe(d.Seconds())
}

func (p *Prometheus) EffectRan(kind string, d time.Duration) {
	p.effectRuns.WithLabelValues(kind).Inc()
}

func (p *Prometheus) EffectFailed(err error) {
	p.effectErrors.Inc()
}

func (p *Prometheus) WriteDeferred() {
	p.writesDeferred.Inc()
}

func (p *Prometheus) WriteDropped() {
	p.writesDropped.Inc()
}
