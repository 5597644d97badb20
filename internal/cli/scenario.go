package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	reactive "github.com/giovanni1707/DOMHelpers-Reactive-sub000"
	"github.com/giovanni1707/DOMHelpers-Reactive-sub000/observer"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
}

// ScenarioResult is the outcome of one scenario run.
type ScenarioResult struct {
	Scenario string             `json:"scenario"`
	Trace    []string           `json:"trace"`
	Stats    ScenarioStats      `json:"stats"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`

	metricLines []string
}

type ScenarioStats struct {
	Flushes        uint64 `json:"flushes"`
	EffectRuns     uint64 `json:"effect_runs"`
	Invalidations  uint64 `json:"invalidations"`
	EffectErrors   uint64 `json:"effect_errors"`
	WritesDeferred uint64 `json:"writes_deferred"`
	WritesDropped  uint64 `json:"writes_dropped"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	names := make([]string, len(Scenarios))
	for i, s := range Scenarios {
		names[i] = s.Name
	}

	cmd := &cobra.Command{
		Use:   "scenario <" + strings.Join(names, "|") + ">",
		Short: "Run a scripted scenario",
		Long: `Run a scripted scenario on a fresh runtime and print the trace
of what its effects observed, followed by the runtime counters.

Examples:
  reactive scenario a
  reactive scenario scope --verbose
  reactive scenario b --format json --metrics`,
		ValidArgs:     names,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, cmd, args[0])
		},
	}

	return cmd
}

func runScenario(opts *ScenarioOptions, cmd *cobra.Command, name string) error {
	scenario, ok := FindScenario(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown scenario %q", name))
	}

	result, err := RunScenario(opts.RootOptions, scenario, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode result", err)
		}
	} else {
		writeText(cmd.OutOrStdout(), scenario, result)
	}

	if result.Stats.EffectErrors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d effect(s) failed", result.Stats.EffectErrors))
	}
	return nil
}

// RunScenario runs scenario on a runtime configured from opts. Diagnostics
// are logged to logw.
func RunScenario(opts *RootOptions, scenario Scenario, logw io.Writer) (*ScenarioResult, error) {
	cfg := opts.Config
	logger := newLogger(opts, logw)

	runtimeOpts := []reactive.Option{
		reactive.WithLogger(logger),
		reactive.WithFlushLimit(cfg.Runtime.FlushLimit),
	}

	var observers []reactive.Observer

	var registry *prometheus.Registry
	if opts.Metrics || cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		observers = append(observers, observer.NewPrometheus(
			observer.WithRegistry(registry),
			observer.WithNamespace(cfg.Metrics.Namespace),
		))
	}

	if cfg.Tracing.Enabled {
		observers = append(observers, observer.NewTracing(
			observer.WithTracerName(cfg.Tracing.TracerName),
		))
	}

	if len(observers) > 0 {
		runtimeOpts = append(runtimeOpts, reactive.WithObserver(reactive.Observers(observers...)))
	}

	rt := reactive.NewRuntime(runtimeOpts...)

	tr := &Trace{}
	logger.Debug("scenario starting", "scenario", scenario.Name)
	rt.Run(func() { scenario.Run(tr) })

	stats := rt.Stats()
	logger.Debug("scenario finished", "scenario", scenario.Name, "flushes", stats.Flushes, "effect_runs", stats.EffectRuns)

	result := &ScenarioResult{
		Scenario: scenario.Name,
		Trace:    tr.Lines(),
		Stats: ScenarioStats{
			Flushes:        stats.Flushes,
			EffectRuns:     stats.EffectRuns,
			Invalidations:  stats.Invalidations,
			EffectErrors:   stats.EffectErrors,
			WritesDeferred: stats.WritesDeferred,
			WritesDropped:  stats.WritesDropped,
		},
	}

	if registry != nil && opts.Metrics {
		families, err := registry.Gather()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to gather metrics", err)
		}
		result.Metrics, result.metricLines = flattenMetrics(families)
	}

	return result, nil
}

func writeText(w io.Writer, scenario Scenario, result *ScenarioResult) {
	fmt.Fprintf(w, "scenario %s: %s\n", scenario.Name, scenario.Description)
	for _, line := range result.Trace {
		fmt.Fprintf(w, "  %s\n", line)
	}

	s := result.Stats
	fmt.Fprintf(w, "stats: flushes=%d effect_runs=%d invalidations=%d effect_errors=%d writes_deferred=%d writes_dropped=%d\n",
		s.Flushes, s.EffectRuns, s.Invalidations, s.EffectErrors, s.WritesDeferred, s.WritesDropped)

	if len(result.metricLines) > 0 {
		fmt.Fprintln(w, "metrics:")
		for _, line := range result.metricLines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// flattenMetrics turns counters into "name{labels}" keys. Histograms only
// contribute their sample count, since durations vary between runs.
func flattenMetrics(families []*dto.MetricFamily) (map[string]float64, []string) {
	values := map[string]float64{}
	var lines []string

	for _, family := range families {
		for _, m := range family.GetMetric() {
			name := family.GetName()
			var value float64

			switch family.GetType() {
			case dto.MetricType_COUNTER:
				value = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				name += "_count"
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}

			if labels := m.GetLabel(); len(labels) > 0 {
				pairs := make([]string, len(labels))
				for i, l := range labels {
					pairs[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
				}
				name += "{" + strings.Join(pairs, ",") + "}"
			}

			values[name] = value
			lines = append(lines, name+" "+strconv.FormatFloat(value, 'g', -1, 64))
		}
	}

	return values, lines
}
