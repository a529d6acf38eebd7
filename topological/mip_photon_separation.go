// Package topological implements topological association algorithms that
// refine existing clusters; currently the mip-photon separation algorithm,
// which splits a track-associated cluster where a track-like deposit
// pattern turns into a shower.
package topological

import (
	"fmt"
	"sort"

	"github.com/rete/pandora/algorithm"
	"github.com/rete/pandora/event"
	"github.com/rete/pandora/internal/logging"
	"github.com/rete/pandora/internal/metrics"
	"github.com/rete/pandora/types"
)

// Name is the registry name of the mip-photon separation algorithm.
const Name = "MipPhotonSeparation"

// PhotonClassifier is the external fast-photon identification contract: it
// reports whether a cluster is a fast photon candidate. Used to relax the
// chi-square acceptance threshold for the photon fragment.
type PhotonClassifier func(st *event.Store, id types.ClusterID) bool

// MipPhotonSeparation scans track-associated clusters for a transition from
// a mip-like to a shower-like deposit pattern and splits them into a mip
// fragment and a photon fragment when a goodness-of-fit test favors the
// split.
type MipPhotonSeparation struct {
	runner        algorithm.Runner
	log           types.Logger
	metrics       types.MetricsCollector
	compatibility types.TrackClusterCompatibility
	isPhotonFast  PhotonClassifier

	trackClusterAssociationName string

	nLayersForMipRegion    uint
	nLayersForShowerRegion uint
	maxLayersMissed        uint
	minMipRegion2Span      types.PseudoLayer
	maxShowerStartLayer    types.PseudoLayer
	minShowerRegionSpan    types.PseudoLayer
	maxShowerStartLayer2   types.PseudoLayer
	minShowerRegionSpan2   types.PseudoLayer

	nonPhotonDeltaChi2Cut  float64
	photonDeltaChi2Cut     float64
	minHitsInPhotonCluster int

	genericDistanceCut      float64
	trackPathWidth          float64
	maxTrackSeparation      float64
	additionalPadWidthsECal float64
	additionalPadWidthsHCal float64
}

var _ algorithm.Algorithm = (*MipPhotonSeparation)(nil)

// Option configures a MipPhotonSeparation instance.
type Option func(*MipPhotonSeparation)

// WithRunner provides the daughter-algorithm dispatcher, required only when
// a track-cluster association daughter is configured.
func WithRunner(runner algorithm.Runner) Option {
	return func(a *MipPhotonSeparation) {
		a.runner = runner
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log types.Logger) Option {
	return func(a *MipPhotonSeparation) {
		a.log = log
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(m types.MetricsCollector) Option {
	return func(a *MipPhotonSeparation) {
		a.metrics = m
	}
}

// WithCompatibility replaces the track-cluster goodness-of-fit function.
// Defaults to types.DefaultCompatibility.
func WithCompatibility(compat types.TrackClusterCompatibility) Option {
	return func(a *MipPhotonSeparation) {
		a.compatibility = compat
	}
}

// WithPhotonClassifier installs the external fast-photon classifier. The
// default classifier identifies nothing, which keeps the stricter
// chi-square threshold in force for every fragment.
func WithPhotonClassifier(classify PhotonClassifier) Option {
	return func(a *MipPhotonSeparation) {
		a.isPhotonFast = classify
	}
}

// New creates a mip-photon separation algorithm with default settings.
func New(opts ...Option) *MipPhotonSeparation {
	a := &MipPhotonSeparation{
		log:           logging.NewNop(),
		metrics:       metrics.NewNop(),
		compatibility: types.DefaultCompatibility,
		isPhotonFast:  func(*event.Store, types.ClusterID) bool { return false },

		nLayersForMipRegion:    2,
		nLayersForShowerRegion: 2,
		maxLayersMissed:        1,
		minMipRegion2Span:      4,
		maxShowerStartLayer:    20,
		minShowerRegionSpan:    4,
		maxShowerStartLayer2:   5,
		minShowerRegionSpan2:   200,

		nonPhotonDeltaChi2Cut:  0,
		photonDeltaChi2Cut:     1,
		minHitsInPhotonCluster: 6,

		genericDistanceCut:      1,
		trackPathWidth:          2,
		maxTrackSeparation:      1000,
		additionalPadWidthsECal: 2.5,
		additionalPadWidthsHCal: 2.5,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Configure reads the algorithm's settings; absent keys keep the defaults
// documented in the settings table.
func (a *MipPhotonSeparation) Configure(settings algorithm.Settings) error {
	var err error

	if a.trackClusterAssociationName, err = settings.StringOr("TrackClusterAssociation", ""); err != nil {
		return err
	}

	if a.nLayersForMipRegion, err = settings.UintOr("NLayersForMipRegion", a.nLayersForMipRegion); err != nil {
		return err
	}
	if a.nLayersForShowerRegion, err = settings.UintOr("NLayersForShowerRegion", a.nLayersForShowerRegion); err != nil {
		return err
	}
	if a.maxLayersMissed, err = settings.UintOr("MaxLayersMissed", a.maxLayersMissed); err != nil {
		return err
	}

	if err = a.layerSetting(settings, "MinMipRegion2Span", &a.minMipRegion2Span); err != nil {
		return err
	}
	if err = a.layerSetting(settings, "MaxShowerStartLayer", &a.maxShowerStartLayer); err != nil {
		return err
	}
	if err = a.layerSetting(settings, "MinShowerRegionSpan", &a.minShowerRegionSpan); err != nil {
		return err
	}
	if err = a.layerSetting(settings, "MaxShowerStartLayer2", &a.maxShowerStartLayer2); err != nil {
		return err
	}
	if err = a.layerSetting(settings, "MinShowerRegionSpan2", &a.minShowerRegionSpan2); err != nil {
		return err
	}

	if a.nonPhotonDeltaChi2Cut, err = settings.FloatOr("NonPhotonDeltaChi2Cut", a.nonPhotonDeltaChi2Cut); err != nil {
		return err
	}
	if a.photonDeltaChi2Cut, err = settings.FloatOr("PhotonDeltaChi2Cut", a.photonDeltaChi2Cut); err != nil {
		return err
	}

	minHits, err := settings.UintOr("MinHitsInPhotonCluster", uint(a.minHitsInPhotonCluster))
	if err != nil {
		return err
	}
	a.minHitsInPhotonCluster = int(minHits)

	if a.genericDistanceCut, err = settings.FloatOr("GenericDistanceCut", a.genericDistanceCut); err != nil {
		return err
	}
	if a.trackPathWidth, err = settings.FloatOr("TrackPathWidth", a.trackPathWidth); err != nil {
		return err
	}
	if a.maxTrackSeparation, err = settings.FloatOr("MaxTrackSeparation", a.maxTrackSeparation); err != nil {
		return err
	}
	if a.additionalPadWidthsECal, err = settings.FloatOr("AdditionalPadWidthsECal", a.additionalPadWidthsECal); err != nil {
		return err
	}
	if a.additionalPadWidthsHCal, err = settings.FloatOr("AdditionalPadWidthsHCal", a.additionalPadWidthsHCal); err != nil {
		return err
	}

	return nil
}

func (a *MipPhotonSeparation) layerSetting(settings algorithm.Settings, key string, dst *types.PseudoLayer) error {
	v, err := settings.UintOr(key, uint(*dst))
	if err != nil {
		return err
	}
	*dst = types.PseudoLayer(v)

	return nil
}

// Run executes one mip-photon separation pass over the current clusters.
func (a *MipPhotonSeparation) Run(ev *event.Store) error {
	// Recalculate track-cluster associations first, when configured.
	if a.trackClusterAssociationName != "" {
		if a.runner == nil {
			return fmt.Errorf("track-cluster association enabled without a runner: %w", types.ErrMisconfigured)
		}
		if err := a.runner.RunAlgorithm(a.trackClusterAssociationName, ev); err != nil {
			return err
		}
	}

	// Candidates in ascending inner-layer order; ties keep creation order.
	ids := ev.ClusterIDs()
	inner := make(map[types.ClusterID]types.PseudoLayer, len(ids))
	for _, cid := range ids {
		c, err := ev.Cluster(cid)
		if err != nil {
			return err
		}
		inner[cid] = c.InnerLayer()
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return inner[ids[i]] < inner[ids[j]]
	})

	for _, cid := range ids {
		// A committed fragmentation earlier in the pass removes clusters
		// from the store; skip handles that no longer resolve.
		if !ev.HasCluster(cid) {
			continue
		}

		cluster, err := ev.Cluster(cid)
		if err != nil {
			return err
		}

		tracks := cluster.Tracks()
		if len(tracks) != 1 {
			continue
		}
		track, err := ev.Track(tracks[0])
		if err != nil {
			return err
		}

		fragment, showerStart, showerEnd, err := a.shouldFragment(ev, cluster, track)
		if err != nil {
			return err
		}
		if !fragment {
			continue
		}

		if err := a.fragmentCluster(ev, cid, tracks[0], track, showerStart, showerEnd); err != nil {
			return err
		}
	}

	return nil
}

// fragmentCluster splits one cluster under a fragmentation transaction and
// keeps whichever side the selection policy favors.
func (a *MipPhotonSeparation) fragmentCluster(ev *event.Store, cid types.ClusterID, tid types.TrackID,
	track types.Track, showerStart, showerEnd types.PseudoLayer) error {
	cluster, err := ev.Cluster(cid)
	if err != nil {
		return err
	}

	tx, err := ev.BeginFragmentation([]types.ClusterID{cid})
	if err != nil {
		return err
	}

	mip, photon, err := a.makeFragments(ev, cid, cluster, tid, track, showerStart, showerEnd)
	if err != nil {
		// Abandon the staged fragments so the original stands untouched.
		_ = tx.Commit(false)

		return err
	}

	keepFragments := false
	if mip.ok && photon.ok {
		originalEnergy, err := ev.CorrectedHadronicEnergy(cid)
		if err != nil {
			_ = tx.Commit(false)

			return err
		}
		mipEnergy, err := ev.CorrectedHadronicEnergy(mip.id)
		if err != nil {
			_ = tx.Commit(false)

			return err
		}

		originalChi := a.compatibility(originalEnergy, track.EnergyAtDCA)
		newChi := a.compatibility(mipEnergy, track.EnergyAtDCA)
		dChi2 := newChi*newChi - originalChi*originalChi

		photonCluster, err := ev.Cluster(photon.id)
		if err != nil {
			_ = tx.Commit(false)

			return err
		}

		passChi2 := dChi2 < a.nonPhotonDeltaChi2Cut ||
			(a.isPhotonFast(ev, photon.id) && dChi2 < a.photonDeltaChi2Cut)
		keepFragments = passChi2 && photonCluster.NumHits() >= a.minHitsInPhotonCluster

		a.log.Debug("fragmentation decision",
			"cluster", cid,
			"deltaChi2", dChi2,
			"photonHits", photonCluster.NumHits(),
			"keepFragments", keepFragments,
		)
	}

	if err := tx.Commit(keepFragments); err != nil {
		return err
	}

	a.metrics.RecordFragmentation(keepFragments)

	return nil
}
