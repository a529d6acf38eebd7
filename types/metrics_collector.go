package types

// MetricsCollector receives reconstruction metrics from the manager and the
// algorithm packages.
//
// Implementations must be cheap: collectors are called once per algorithm
// pass, not per hit. A no-op collector is used when none is configured.
type MetricsCollector interface {
	// RecordAlgorithmRun records one completed algorithm pass with its
	// wall-clock duration in seconds.
	RecordAlgorithmRun(name string, seconds float64)

	// RecordClustersFormed records the number of clusters created by a
	// clustering pass, after empty-cluster deletion.
	RecordClustersFormed(count int)

	// RecordHitsAssigned records how many hits a clustering pass claimed.
	RecordHitsAssigned(count int)

	// RecordRemnantHits records how many hits were left unclaimed after
	// the energy-capped assignment walk.
	RecordRemnantHits(count int)

	// RecordFragmentation records one fragmentation decision: accepted
	// means the fragments replaced the original cluster.
	RecordFragmentation(accepted bool)
}
