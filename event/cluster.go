package event

import (
	"slices"

	"github.com/rete/pandora/types"
)

// Cluster is an ordered collection of hits grouped by pseudo layer, plus
// zero or more associated tracks.
//
// Clusters are created and mutated only through a Store; the methods on
// Cluster itself are read accessors. Hit handles held by a cluster are
// non-owning references into the store's hit arena.
type Cluster struct {
	hitsByLayer map[types.PseudoLayer][]types.HitID
	layers      []types.PseudoLayer // sorted ascending
	isolated    []types.HitID

	tracks []types.TrackID

	hadronicEnergy   float64
	innerLayer       types.PseudoLayer
	outerLayer       types.PseudoLayer
	initialDirection types.Vector3

	numHits int
}

func newCluster(direction types.Vector3) *Cluster {
	return &Cluster{
		hitsByLayer:      make(map[types.PseudoLayer][]types.HitID),
		innerLayer:       types.UnsetLayer,
		outerLayer:       types.UnsetLayer,
		initialDirection: direction,
	}
}

func (c *Cluster) addHit(id types.HitID, hit types.Hit) {
	if _, ok := c.hitsByLayer[hit.Layer]; !ok {
		idx, _ := slices.BinarySearch(c.layers, hit.Layer)
		c.layers = slices.Insert(c.layers, idx, hit.Layer)
	}

	c.hitsByLayer[hit.Layer] = append(c.hitsByLayer[hit.Layer], id)
	c.hadronicEnergy += hit.Energy
	c.numHits++

	if !c.innerLayer.IsSet() || hit.Layer < c.innerLayer {
		c.innerLayer = hit.Layer
	}
	if !c.outerLayer.IsSet() || hit.Layer > c.outerLayer {
		c.outerLayer = hit.Layer
	}
}

func (c *Cluster) addIsolatedHit(id types.HitID, hit types.Hit) {
	c.isolated = append(c.isolated, id)
	c.hadronicEnergy += hit.Energy
}

// NumHits returns the number of ordinary (non-isolated) hits in the cluster.
func (c *Cluster) NumHits() int {
	return c.numHits
}

// NumIsolatedHits returns the number of hits held in the auxiliary isolated
// hit set.
func (c *Cluster) NumIsolatedHits() int {
	return len(c.isolated)
}

// HadronicEnergy returns the running sum of hit energies, in GeV.
func (c *Cluster) HadronicEnergy() float64 {
	return c.hadronicEnergy
}

// InnerLayer returns the shallowest pseudo layer occupied by an ordinary
// hit, or types.UnsetLayer for an empty cluster.
func (c *Cluster) InnerLayer() types.PseudoLayer {
	return c.innerLayer
}

// OuterLayer returns the deepest pseudo layer occupied by an ordinary hit,
// or types.UnsetLayer for an empty cluster.
func (c *Cluster) OuterLayer() types.PseudoLayer {
	return c.outerLayer
}

// InitialDirection returns the cluster's seed direction: the seed track's
// direction at the calorimeter face for track-seeded clusters, or the unit
// position vector of the seed hit otherwise.
func (c *Cluster) InitialDirection() types.Vector3 {
	return c.initialDirection
}

// Tracks returns the handles of the tracks associated with the cluster, in
// association order.
func (c *Cluster) Tracks() []types.TrackID {
	return slices.Clone(c.tracks)
}

// Layers returns the occupied pseudo layers in increasing order.
func (c *Cluster) Layers() []types.PseudoLayer {
	return slices.Clone(c.layers)
}

// HitsInLayer returns the ordinary hits in the given layer, in the order
// they were added. The result is nil for an unoccupied layer.
func (c *Cluster) HitsInLayer(layer types.PseudoLayer) []types.HitID {
	return slices.Clone(c.hitsByLayer[layer])
}

// IsolatedHits returns the auxiliary isolated hit set, in addition order.
func (c *Cluster) IsolatedHits() []types.HitID {
	return slices.Clone(c.isolated)
}
