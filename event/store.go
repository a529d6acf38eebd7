package event

import (
	"fmt"
	"slices"
	"sort"

	"github.com/rete/pandora/types"
)

// Option configures a Store.
type Option func(*Store)

// WithEnergyCorrection installs a detector-dependent correction applied on
// top of the raw hadronic energy sum by CorrectedHadronicEnergy. Without it
// the corrected energy equals the raw sum.
func WithEnergyCorrection(correct func(hadronicEnergy float64) float64) Option {
	return func(s *Store) {
		s.energyCorrection = correct
	}
}

// Store holds one event's hits, tracks and clusters.
//
// A Store is built once per event from the materialized hit and track lists
// and is then mutated sequentially by algorithm passes. It is not safe for
// concurrent use; the processing model is single-threaded by design.
type Store struct {
	hits      []types.Hit
	available []bool
	tracks    []types.Track

	clusters map[types.ClusterID]*Cluster
	order    []types.ClusterID // canonical cluster list, creation order
	nextID   types.ClusterID

	orderedHits []types.HitID // all hits sorted by (layer, load order)

	frag *Fragmentation

	energyCorrection func(float64) float64
}

// NewStore creates a store over the given hit and track lists. All hits
// start out available. Hit and track handles are the indices into the
// supplied slices.
func NewStore(hits []types.Hit, tracks []types.Track, opts ...Option) *Store {
	s := &Store{
		hits:      slices.Clone(hits),
		available: make([]bool, len(hits)),
		tracks:    slices.Clone(tracks),
		clusters:  make(map[types.ClusterID]*Cluster),
	}
	for i := range s.available {
		s.available[i] = true
	}

	s.orderedHits = make([]types.HitID, len(hits))
	for i := range s.orderedHits {
		s.orderedHits[i] = types.HitID(i)
	}
	sort.SliceStable(s.orderedHits, func(i, j int) bool {
		return s.hits[s.orderedHits[i]].Layer < s.hits[s.orderedHits[j]].Layer
	})

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NumHits returns the number of hits in the event.
func (s *Store) NumHits() int {
	return len(s.hits)
}

// NumTracks returns the number of tracks in the event.
func (s *Store) NumTracks() int {
	return len(s.tracks)
}

// Hit resolves a hit handle.
func (s *Store) Hit(id types.HitID) (types.Hit, error) {
	if id < 0 || int(id) >= len(s.hits) {
		return types.Hit{}, fmt.Errorf("hit %d: %w", id, types.ErrInvalidParameter)
	}

	return s.hits[id], nil
}

// Track resolves a track handle.
func (s *Store) Track(id types.TrackID) (types.Track, error) {
	if id < 0 || int(id) >= len(s.tracks) {
		return types.Track{}, fmt.Errorf("track %d: %w", id, types.ErrInvalidParameter)
	}

	return s.tracks[id], nil
}

// TrackIDs returns the handles of all tracks, in load order.
func (s *Store) TrackIDs() []types.TrackID {
	ids := make([]types.TrackID, len(s.tracks))
	for i := range ids {
		ids[i] = types.TrackID(i)
	}

	return ids
}

// OrderedHitIDs returns the handles of all hits in increasing pseudo-layer
// order; ties within a layer keep load order.
func (s *Store) OrderedHitIDs() []types.HitID {
	return slices.Clone(s.orderedHits)
}

// HitAvailable reports whether the hit has not yet been claimed by any
// cluster. Out-of-range handles report false.
func (s *Store) HitAvailable(id types.HitID) bool {
	if id < 0 || int(id) >= len(s.available) {
		return false
	}

	return s.available[id]
}

// Cluster resolves a cluster handle. Deleted clusters resolve to an error.
func (s *Store) Cluster(id types.ClusterID) (*Cluster, error) {
	c, ok := s.clusters[id]
	if !ok {
		return nil, fmt.Errorf("cluster %d: %w", id, types.ErrInvalidParameter)
	}

	return c, nil
}

// HasCluster reports whether the handle resolves to a live cluster in
// either the canonical list or an active fragmentation's staged list.
func (s *Store) HasCluster(id types.ClusterID) bool {
	_, ok := s.clusters[id]

	return ok
}

// ClusterIDs returns the canonical cluster list in creation order. Clusters
// staged by an active fragmentation are excluded until committed.
func (s *Store) ClusterIDs() []types.ClusterID {
	return slices.Clone(s.order)
}

// CorrectedHadronicEnergy returns the cluster's hadronic energy after the
// configured detector correction, or the raw sum when no correction is set.
func (s *Store) CorrectedHadronicEnergy(id types.ClusterID) (float64, error) {
	c, err := s.Cluster(id)
	if err != nil {
		return 0, err
	}
	if s.energyCorrection == nil {
		return c.hadronicEnergy, nil
	}

	return s.energyCorrection(c.hadronicEnergy), nil
}

func (s *Store) registerCluster(c *Cluster) types.ClusterID {
	id := s.nextID
	s.nextID++
	s.clusters[id] = c

	if s.frag != nil {
		s.frag.fragments = append(s.frag.fragments, id)
	} else {
		s.order = append(s.order, id)
	}

	return id
}

// CreateClusterFromTrack creates a new empty cluster seeded by the given
// track: the track is associated at creation and the cluster's initial
// direction is the track's direction at the calorimeter face.
func (s *Store) CreateClusterFromTrack(id types.TrackID) (types.ClusterID, error) {
	track, err := s.Track(id)
	if err != nil {
		return 0, err
	}

	c := newCluster(track.CalorimeterState.Direction.Unit())
	c.tracks = append(c.tracks, id)

	return s.registerCluster(c), nil
}

// CreateClusterFromHit creates a new cluster seeded by the given hit. The
// hit is claimed immediately and sets the cluster's initial direction to
// its unit position vector.
func (s *Store) CreateClusterFromHit(id types.HitID) (types.ClusterID, error) {
	hit, err := s.Hit(id)
	if err != nil {
		return 0, err
	}

	cid := s.registerCluster(newCluster(hit.Position.Unit()))
	if err := s.AddHitToCluster(cid, id); err != nil {
		return 0, err
	}

	return cid, nil
}

// CreateClusterFromHits creates a new cluster from a non-empty hit list.
// The first hit seeds the initial direction.
func (s *Store) CreateClusterFromHits(ids []types.HitID) (types.ClusterID, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("empty hit list: %w", types.ErrInvalidParameter)
	}

	cid, err := s.CreateClusterFromHit(ids[0])
	if err != nil {
		return 0, err
	}
	for _, id := range ids[1:] {
		if err := s.AddHitToCluster(cid, id); err != nil {
			return 0, err
		}
	}

	return cid, nil
}

// AddHitToCluster claims an available hit for the cluster.
//
// Inside an active fragmentation, hits owned by the transaction's original
// clusters may be added to staged fragment clusters without an availability
// check; ownership is settled by the commit step.
func (s *Store) AddHitToCluster(cid types.ClusterID, hid types.HitID) error {
	c, err := s.Cluster(cid)
	if err != nil {
		return err
	}
	hit, err := s.Hit(hid)
	if err != nil {
		return err
	}

	if s.frag != nil && s.frag.staged(cid) {
		if !s.frag.owns(hid) {
			return fmt.Errorf("hit %d not owned by fragmentation originals: %w", hid, types.ErrInvalidParameter)
		}
		c.addHit(hid, hit)

		return nil
	}

	if !s.available[hid] {
		return fmt.Errorf("hit %d already claimed: %w", hid, types.ErrInvalidParameter)
	}

	s.available[hid] = false
	c.addHit(hid, hit)

	return nil
}

// AddIsolatedHitToCluster claims an available hit into the cluster's
// auxiliary isolated hit set.
func (s *Store) AddIsolatedHitToCluster(cid types.ClusterID, hid types.HitID) error {
	c, err := s.Cluster(cid)
	if err != nil {
		return err
	}
	hit, err := s.Hit(hid)
	if err != nil {
		return err
	}
	if !s.available[hid] {
		return fmt.Errorf("hit %d already claimed: %w", hid, types.ErrInvalidParameter)
	}

	s.available[hid] = false
	c.addIsolatedHit(hid, hit)

	return nil
}

// DeleteCluster removes a cluster from the canonical list and releases its
// hits back to the available pool.
func (s *Store) DeleteCluster(id types.ClusterID) error {
	if _, ok := s.clusters[id]; !ok {
		return fmt.Errorf("cluster %d: %w", id, types.ErrInvalidParameter)
	}

	s.removeCluster(id, true)

	return nil
}

// DeleteClusters removes several clusters; it stops at the first bad handle.
func (s *Store) DeleteClusters(ids []types.ClusterID) error {
	for _, id := range ids {
		if err := s.DeleteCluster(id); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) removeCluster(id types.ClusterID, freeHits bool) {
	c := s.clusters[id]

	if freeHits {
		for _, layer := range c.layers {
			for _, hid := range c.hitsByLayer[layer] {
				s.available[hid] = true
			}
		}
		for _, hid := range c.isolated {
			s.available[hid] = true
		}
	}

	delete(s.clusters, id)
	if idx := slices.Index(s.order, id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
}

// LayerHits pairs a pseudo layer with the hits a cluster holds in it.
type LayerHits struct {
	Layer types.PseudoLayer
	Hits  []types.HitID
}

// OrderedClusterHits returns the cluster's hits grouped by pseudo layer in
// increasing layer order. With includeIsolated set, the auxiliary isolated
// hit set is merged in at each hit's own layer, after the ordinary hits of
// that layer.
func (s *Store) OrderedClusterHits(id types.ClusterID, includeIsolated bool) ([]LayerHits, error) {
	c, err := s.Cluster(id)
	if err != nil {
		return nil, err
	}

	byLayer := make(map[types.PseudoLayer][]types.HitID, len(c.layers))
	layers := slices.Clone(c.layers)
	for _, l := range layers {
		byLayer[l] = slices.Clone(c.hitsByLayer[l])
	}

	if includeIsolated {
		for _, hid := range c.isolated {
			layer := s.hits[hid].Layer
			if _, ok := byLayer[layer]; !ok {
				idx, _ := slices.BinarySearch(layers, layer)
				layers = slices.Insert(layers, idx, layer)
			}
			byLayer[layer] = append(byLayer[layer], hid)
		}
	}

	out := make([]LayerHits, 0, len(layers))
	for _, l := range layers {
		out = append(out, LayerHits{Layer: l, Hits: byLayer[l]})
	}

	return out, nil
}
