// Package metrics provides types.MetricsCollector implementations: a no-op
// collector used as the default and a Prometheus-backed collector.
package metrics

import "github.com/rete/pandora/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAlgorithmRun discards the algorithm run metric.
func (n *NopMetrics) RecordAlgorithmRun(_ /* name */ string, _ /* seconds */ float64) {
	// No-op
}

// RecordClustersFormed discards the cluster count metric.
func (n *NopMetrics) RecordClustersFormed(_ /* count */ int) {
	// No-op
}

// RecordHitsAssigned discards the assigned hit count metric.
func (n *NopMetrics) RecordHitsAssigned(_ /* count */ int) {
	// No-op
}

// RecordRemnantHits discards the remnant hit count metric.
func (n *NopMetrics) RecordRemnantHits(_ /* count */ int) {
	// No-op
}

// RecordFragmentation discards the fragmentation decision metric.
func (n *NopMetrics) RecordFragmentation(_ /* accepted */ bool) {
	// No-op
}
