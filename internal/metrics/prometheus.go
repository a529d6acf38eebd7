package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rete/pandora/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	algorithmRuns  *prometheus.HistogramVec
	clustersFormed prometheus.Counter
	hitsAssigned   prometheus.Counter
	remnantHits    prometheus.Counter
	fragmentations *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "pandora" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "pandora"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.algorithmRuns = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "reconstruction",
			Name:      "algorithm_run_seconds",
			Help:      "Wall-clock duration of one algorithm pass in seconds, by algorithm name.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"algorithm"})

		p.clustersFormed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reconstruction",
			Name:      "clusters_formed_total",
			Help:      "Total clusters surviving a clustering pass.",
		})

		p.hitsAssigned = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reconstruction",
			Name:      "hits_assigned_total",
			Help:      "Total hits claimed by the energy-capped assignment walk.",
		})

		p.remnantHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reconstruction",
			Name:      "remnant_hits_total",
			Help:      "Total hits left unclaimed after assignment.",
		})

		p.fragmentations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reconstruction",
			Name:      "fragmentations_total",
			Help:      "Total fragmentation decisions by outcome (accepted/rejected).",
		}, []string{"outcome"})

		for _, c := range []prometheus.Collector{
			p.algorithmRuns, p.clustersFormed, p.hitsAssigned, p.remnantHits, p.fragmentations,
		} {
			// Ignore AlreadyRegisteredError so two collectors may share a registry.
			_ = p.reg.Register(c)
		}
	})
}

// RecordAlgorithmRun observes one algorithm pass duration.
func (p *PrometheusCollector) RecordAlgorithmRun(name string, seconds float64) {
	p.ensureRegistered()
	p.algorithmRuns.WithLabelValues(name).Observe(seconds)
}

// RecordClustersFormed counts clusters surviving a clustering pass.
func (p *PrometheusCollector) RecordClustersFormed(count int) {
	p.ensureRegistered()
	p.clustersFormed.Add(float64(count))
}

// RecordHitsAssigned counts hits claimed during assignment.
func (p *PrometheusCollector) RecordHitsAssigned(count int) {
	p.ensureRegistered()
	p.hitsAssigned.Add(float64(count))
}

// RecordRemnantHits counts hits left over after assignment.
func (p *PrometheusCollector) RecordRemnantHits(count int) {
	p.ensureRegistered()
	p.remnantHits.Add(float64(count))
}

// RecordFragmentation counts one fragmentation decision.
func (p *PrometheusCollector) RecordFragmentation(accepted bool) {
	p.ensureRegistered()
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	p.fragmentations.WithLabelValues(outcome).Inc()
}
