package provisioning

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run provisioning metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	phaseDuration  *prometheus.HistogramVec
	phasesTotal    *prometheus.CounterVec
	commandsTotal  *prometheus.CounterVec
	commandRetries *prometheus.CounterVec
	runSucceeded   *prometheus.GaugeVec
}

// NewMetrics creates metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kubeprov",
				Subsystem: "provision",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
			},
			[]string{"phase", "outcome"},
		),

		phasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubeprov",
				Subsystem: "provision",
				Name:      "phases_total",
				Help:      "Total number of phases run by outcome",
			},
			[]string{"phase", "outcome"},
		),

		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubeprov",
				Subsystem: "provision",
				Name:      "commands_total",
				Help:      "Total number of commands run by result (succeeded, failed, ignored)",
			},
			[]string{"phase", "result"},
		),

		commandRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kubeprov",
				Subsystem: "provision",
				Name:      "command_retries_total",
				Help:      "Total number of command retries",
			},
			[]string{"phase"},
		),

		runSucceeded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "kubeprov",
				Subsystem: "provision",
				Name:      "run_succeeded",
				Help:      "Whether the last run for a role succeeded (1) or not (0)",
			},
			[]string{"role"},
		),
	}

	m.registry.MustRegister(
		m.phaseDuration,
		m.phasesTotal,
		m.commandsTotal,
		m.commandRetries,
		m.runSucceeded,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordPhase records a finished phase.
func (m *Metrics) RecordPhase(r RunResult) {
	if m == nil {
		return
	}
	outcome := r.Outcome.String()
	m.phaseDuration.WithLabelValues(r.Phase.Name, outcome).Observe(r.Duration.Seconds())
	m.phasesTotal.WithLabelValues(r.Phase.Name, outcome).Inc()
}

// RecordCommand records a command result.
func (m *Metrics) RecordCommand(phase, result string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(phase, result).Inc()
}

// RecordRetry records a retry of a command.
func (m *Metrics) RecordRetry(phase string) {
	if m == nil {
		return
	}
	m.commandRetries.WithLabelValues(phase).Inc()
}

// RecordRun records the overall result of a sequence.
func (m *Metrics) RecordRun(s *Summary) {
	if m == nil || s == nil {
		return
	}
	v := 0.0
	if s.Succeeded() {
		v = 1
	}
	m.runSucceeded.WithLabelValues(string(s.Role)).Set(v)
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
