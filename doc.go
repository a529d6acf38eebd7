// Package pandora provides particle flow calorimeter reconstruction: it
// clusters calorimeter hits around charged tracks and refines the clusters
// with topological association passes.
//
// The root package hosts the Pandora manager, which owns the algorithm
// registry, configures algorithm instances from settings bags, and runs
// them over an event store. Algorithms live in their own packages
// (clustering, topological) and are wired in by name:
//
//	p := pandora.New()
//	_ = p.RegisterAlgorithm(clustering.Name, func() algorithm.Algorithm {
//	    return clustering.New(clustering.WithRunner(p))
//	})
//	_ = p.ConfigureAlgorithm(clustering.Name, settings)
//
//	ev, _ := event.NewStore(hits, tracks)
//	if err := p.Process(ev, clustering.Name); err != nil {
//	    log.Fatal(err)
//	}
//
// Events are processed sequentially: an event store is owned by one
// reconstruction pass at a time, and identical inputs reproduce identical
// cluster output. The manager itself is safe for concurrent use across
// distinct event stores.
//
// # Packages
//
//   - types: shared value types, small interfaces and sentinel errors
//   - event: the per-event store of hits, tracks and clusters, with the
//     two-phase cluster fragmentation transaction
//   - algorithm: the Algorithm capability, registry and settings bag
//   - clustering: track-seeded forced clustering
//   - topological: mip-photon cluster separation
//   - eventtest: builders and geometry doubles for tests and examples
package pandora
