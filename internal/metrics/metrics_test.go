package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	m := NewNop()

	require.NotPanics(t, func() {
		m.RecordAlgorithmRun("ForcedClustering", 0.01)
		m.RecordClustersFormed(2)
		m.RecordHitsAssigned(40)
		m.RecordRemnantHits(3)
		m.RecordFragmentation(true)
	})
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg, "pandora")

	m.RecordClustersFormed(2)
	m.RecordClustersFormed(3)
	m.RecordHitsAssigned(40)
	m.RecordRemnantHits(7)
	m.RecordFragmentation(true)
	m.RecordFragmentation(false)
	m.RecordFragmentation(false)
	m.RecordAlgorithmRun("MipPhotonSeparation", 0.002)

	require.InDelta(t, 5, testutil.ToFloat64(m.clustersFormed), 1e-12)
	require.InDelta(t, 40, testutil.ToFloat64(m.hitsAssigned), 1e-12)
	require.InDelta(t, 7, testutil.ToFloat64(m.remnantHits), 1e-12)
	require.InDelta(t, 1, testutil.ToFloat64(m.fragmentations.WithLabelValues("accepted")), 1e-12)
	require.InDelta(t, 2, testutil.ToFloat64(m.fragmentations.WithLabelValues("rejected")), 1e-12)
}

func TestPrometheusCollector_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	a := NewPrometheus(reg, "pandora")
	b := NewPrometheus(reg, "pandora")

	require.NotPanics(t, func() {
		a.RecordClustersFormed(1)
		b.RecordClustersFormed(1)
	})
}
