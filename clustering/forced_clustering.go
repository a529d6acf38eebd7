// Package clustering implements track-seeded clustering of calorimeter
// hits.
package clustering

import (
	"fmt"
	"sort"

	"github.com/rete/pandora/algorithm"
	"github.com/rete/pandora/event"
	"github.com/rete/pandora/internal/logging"
	"github.com/rete/pandora/internal/metrics"
	"github.com/rete/pandora/types"
)

// Name is the registry name of the forced clustering algorithm.
const Name = "ForcedClustering"

// ForcedClustering greedily assigns hits to track-seeded clusters.
//
// Every track seeds one cluster. Each (track, available hit) pair is scored
// by the perpendicular helix-to-hit distance, all pairs are sorted globally
// by that distance, and hits are assigned nearest-first until each cluster's
// hadronic energy reaches its seed track's energy at the distance of closest
// approach. Leftover hits either go to a configured daughter clustering
// algorithm or are collected into a single remnant cluster. Clusters that
// end up empty are deleted.
type ForcedClustering struct {
	runner  algorithm.Runner
	log     types.Logger
	metrics types.MetricsCollector

	shouldRunStandardClustering bool
	standardClusteringName      string
	shouldClusterIsolatedHits   bool
	shouldAssociateIsolatedHits bool
	isolatedHitAssociationName  string
}

var _ algorithm.Algorithm = (*ForcedClustering)(nil)

// Option configures a ForcedClustering instance.
type Option func(*ForcedClustering)

// WithRunner provides the daughter-algorithm dispatcher. Required only when
// the standard-clustering or isolated-hit-association daughters are enabled
// in the settings.
func WithRunner(runner algorithm.Runner) Option {
	return func(a *ForcedClustering) {
		a.runner = runner
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log types.Logger) Option {
	return func(a *ForcedClustering) {
		a.log = log
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(m types.MetricsCollector) Option {
	return func(a *ForcedClustering) {
		a.metrics = m
	}
}

// New creates a forced clustering algorithm with default settings.
func New(opts ...Option) *ForcedClustering {
	a := &ForcedClustering{
		log:     logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Configure reads the algorithm's settings. Absent keys keep their
// defaults; enabling a daughter algorithm requires its name.
func (a *ForcedClustering) Configure(settings algorithm.Settings) error {
	var err error

	if a.shouldRunStandardClustering, err = settings.BoolOr("ShouldRunStandardClusteringAlgorithm", false); err != nil {
		return err
	}
	if a.shouldRunStandardClustering {
		if a.standardClusteringName, err = settings.String("StandardClustering"); err != nil {
			return err
		}
	}

	if a.shouldClusterIsolatedHits, err = settings.BoolOr("ShouldClusterIsolatedHits", false); err != nil {
		return err
	}

	if a.shouldAssociateIsolatedHits, err = settings.BoolOr("ShouldAssociateIsolatedHits", false); err != nil {
		return err
	}
	if a.shouldAssociateIsolatedHits {
		if a.isolatedHitAssociationName, err = settings.String("IsolatedHitAssociation"); err != nil {
			return err
		}
	}

	return nil
}

// trackDistance is the ephemeral record scored during assignment: one
// candidate (hit, track-seeded cluster) pair and its helix distance.
type trackDistance struct {
	hit         types.HitID
	cluster     types.ClusterID
	trackEnergy float64
	distance    float64
}

// Run executes one forced clustering pass over the event.
func (a *ForcedClustering) Run(ev *event.Store) error {
	trackIDs := ev.TrackIDs()
	if len(trackIDs) == 0 {
		return fmt.Errorf("empty track list: %w", types.ErrInvalidParameter)
	}

	orderedHits := ev.OrderedHitIDs()
	if len(orderedHits) == 0 {
		return fmt.Errorf("empty hit list: %w", types.ErrInvalidParameter)
	}

	// Seed one cluster per track and score every candidate pair.
	var records []trackDistance
	created := make([]types.ClusterID, 0, len(trackIDs))

	for _, tid := range trackIDs {
		track, err := ev.Track(tid)
		if err != nil {
			return err
		}

		cid, err := ev.CreateClusterFromTrack(tid)
		if err != nil {
			return err
		}
		created = append(created, cid)

		for _, hid := range orderedHits {
			hit, err := ev.Hit(hid)
			if err != nil {
				return err
			}
			if !ev.HitAvailable(hid) || (hit.Isolated && !a.shouldClusterIsolatedHits) {
				continue
			}

			separation, err := track.Helix.DistanceToPoint(hit.Position)
			if err != nil {
				return fmt.Errorf("helix distance for hit %d: %w", hid, err)
			}

			records = append(records, trackDistance{
				hit:         hid,
				cluster:     cid,
				trackEnergy: track.EnergyAtDCA,
				distance:    separation.Magnitude(),
			})
		}
	}

	// Nearest-first assignment with the per-cluster energy cap. The stable
	// sort keeps the record encounter order on equal distances, so repeated
	// runs produce identical memberships.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].distance < records[j].distance
	})

	assigned := 0
	for _, rec := range records {
		cluster, err := ev.Cluster(rec.cluster)
		if err != nil {
			return err
		}
		if cluster.HadronicEnergy() < rec.trackEnergy && ev.HitAvailable(rec.hit) {
			if err := ev.AddHitToCluster(rec.cluster, rec.hit); err != nil {
				return err
			}
			assigned++
		}
	}

	if err := a.handleRemnants(ev, orderedHits); err != nil {
		return err
	}

	if a.shouldAssociateIsolatedHits {
		if a.runner == nil {
			return fmt.Errorf("isolated hit association enabled without a runner: %w", types.ErrMisconfigured)
		}
		if err := a.runner.RunAlgorithm(a.isolatedHitAssociationName, ev); err != nil {
			return err
		}
	}

	if err := a.removeEmptyClusters(ev); err != nil {
		return err
	}

	formed := 0
	for _, cid := range created {
		if ev.HasCluster(cid) {
			formed++
		}
	}

	a.metrics.RecordClustersFormed(formed)
	a.metrics.RecordHitsAssigned(assigned)
	a.log.Debug("forced clustering pass complete",
		"tracks", len(trackIDs),
		"hitsAssigned", assigned,
		"clustersFormed", formed,
	)

	return nil
}

// handleRemnants deals with hits still available after the energy-capped
// walk: either a daughter clustering algorithm takes them, or they are
// crudely collected into a single cluster.
func (a *ForcedClustering) handleRemnants(ev *event.Store, orderedHits []types.HitID) error {
	if a.shouldRunStandardClustering {
		if a.runner == nil {
			return fmt.Errorf("standard clustering enabled without a runner: %w", types.ErrMisconfigured)
		}

		return a.runner.RunAlgorithm(a.standardClusteringName, ev)
	}

	var remnants []types.HitID
	for _, hid := range orderedHits {
		hit, err := ev.Hit(hid)
		if err != nil {
			return err
		}
		if ev.HitAvailable(hid) && (a.shouldClusterIsolatedHits || !hit.Isolated) {
			remnants = append(remnants, hid)
		}
	}

	a.metrics.RecordRemnantHits(len(remnants))

	if len(remnants) == 0 {
		return nil
	}

	_, err := ev.CreateClusterFromHits(remnants)

	return err
}

func (a *ForcedClustering) removeEmptyClusters(ev *event.Store) error {
	var empty []types.ClusterID
	for _, cid := range ev.ClusterIDs() {
		cluster, err := ev.Cluster(cid)
		if err != nil {
			return err
		}
		if cluster.NumHits() == 0 && cluster.NumIsolatedHits() == 0 {
			empty = append(empty, cid)
		}
	}

	return ev.DeleteClusters(empty)
}
