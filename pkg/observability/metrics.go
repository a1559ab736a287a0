package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the fabric's Prometheus collectors.
type Metrics struct {
	Dispatches       *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	Compositions     *prometheus.CounterVec
	Retries          prometheus.Counter
	Components       prometheus.Gauge
	HealthProbes     *prometheus.CounterVec
	PluginFailures   *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
// Pass prometheus.DefaultRegisterer for production use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycelium",
			Name:      "dispatches_total",
			Help:      "Intent dispatches by outcome (ok, error, timeout).",
		}, []string{"outcome"}),
		DispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mycelium",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent waiting for a component to handle an intent.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		Compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycelium",
			Name:      "compositions_total",
			Help:      "Composition runs by strategy.",
		}, []string{"strategy"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mycelium",
			Name:      "composition_retries_total",
			Help:      "Retry attempts made by the retry overlay.",
		}),
		Components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mycelium",
			Name:      "registered_components",
			Help:      "Components currently registered in discovery.",
		}),
		HealthProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycelium",
			Name:      "health_probes_total",
			Help:      "Health probes by resulting status.",
		}, []string{"health"}),
		PluginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycelium",
			Name:      "plugin_failures_total",
			Help:      "Plugin hook failures (errors and recovered panics) by stage.",
		}, []string{"stage"}),
	}
	reg.MustRegister(
		m.Dispatches,
		m.DispatchDuration,
		m.Compositions,
		m.Retries,
		m.Components,
		m.HealthProbes,
		m.PluginFailures,
	)
	return m
}

// ObserveDispatch records a dispatch outcome and its latency.
// Nil-safe so call sites can run without metrics wired.
func (m *Metrics) ObserveDispatch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(outcome).Inc()
	m.DispatchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveComposition records a composition run.
func (m *Metrics) ObserveComposition(strategy string) {
	if m == nil {
		return
	}
	m.Compositions.WithLabelValues(strategy).Inc()
}

// ObserveRetry records one retry attempt.
func (m *Metrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}

// SetComponents records the registry size.
func (m *Metrics) SetComponents(n int) {
	if m == nil {
		return
	}
	m.Components.Set(float64(n))
}

// ObserveProbe records a health probe result.
func (m *Metrics) ObserveProbe(health string) {
	if m == nil {
		return
	}
	m.HealthProbes.WithLabelValues(health).Inc()
}

// ObservePluginFailure records a failed plugin hook.
func (m *Metrics) ObservePluginFailure(stage string) {
	if m == nil {
		return
	}
	m.PluginFailures.WithLabelValues(stage).Inc()
}
