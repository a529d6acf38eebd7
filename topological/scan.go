package topological

import (
	"errors"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/types"
)

// regionBounds are the boundary layers discovered by one layer scan. Every
// field starts at types.UnsetLayer and is only written when the scan sees
// the corresponding evidence.
type regionBounds struct {
	mipRegion1Start types.PseudoLayer
	mipRegion1End   types.PseudoLayer
	mipRegion2Start types.PseudoLayer
	mipRegion2End   types.PseudoLayer
	showerStart     types.PseudoLayer
	showerEnd       types.PseudoLayer
}

func newRegionBounds() regionBounds {
	return regionBounds{
		mipRegion1Start: types.UnsetLayer,
		mipRegion1End:   types.UnsetLayer,
		mipRegion2Start: types.UnsetLayer,
		mipRegion2End:   types.UnsetLayer,
		showerStart:     types.UnsetLayer,
		showerEnd:       types.UnsetLayer,
	}
}

// scanRegions walks the cluster's layers from just past the track
// projection up to the outer layer, classifying each layer as
// mip-consistent, shower-consistent or neither, and records the region
// boundary layers.
//
// The scan holds one of three mutually exclusive region states: mipRegion1
// (initial), showerRegion, mipRegion2. Hysteresis counters demand
// NLayersForShowerRegion consecutive shower layers before leaving
// mipRegion1 and NLayersForMipRegion consecutive mip layers before leaving
// showerRegion; a single opposing layer resets the in-progress count. The
// scan exits early when more than MaxLayersMissed consecutive layers lack
// any track-consistent hit, or when a second shower onset is seen after
// mipRegion2 was established.
func (a *MipPhotonSeparation) scanRegions(ev *event.Store, cluster *event.Cluster, track types.Track) (regionBounds, error) {
	bounds := newRegionBounds()

	firstLayer := types.TrackProjectionLayer + 1
	lastLayer := cluster.OuterLayer()

	shouldContinue := true
	var layersMissed, mipCount, showerCount uint
	mipRegion1, showerRegion, mipRegion2 := true, false, false

	for layer := firstLayer; layer <= lastLayer && shouldContinue; layer++ {
		trackHitFound, mipTrackHitFound, showerTrackHitFound := false, false, false

		for _, hid := range cluster.HitsInLayer(layer) {
			hit, err := ev.Hit(hid)
			if err != nil {
				return bounds, err
			}

			distance, err := a.distanceToTrack(cluster, track, hit)
			if errors.Is(err, types.ErrOutOfRange) {
				continue
			}
			if err != nil {
				return bounds, err
			}

			if distance < a.genericDistanceCut {
				trackHitFound = true
				if hit.PossibleMip {
					mipTrackHitFound = true
				} else {
					showerTrackHitFound = true
				}
			}
		}

		if trackHitFound {
			layersMissed = 0
		} else {
			layersMissed++
		}

		if mipTrackHitFound {
			if mipRegion1 {
				bounds.mipRegion1End = layer
			}
			if mipRegion2 {
				bounds.mipRegion2End = layer
			}
		}

		if showerTrackHitFound && showerRegion {
			bounds.showerEnd = layer
		}

		if mipTrackHitFound && !showerTrackHitFound {
			if mipRegion1 && layer < bounds.mipRegion1Start {
				bounds.mipRegion1Start = layer
			}

			if mipRegion1 || mipRegion2 {
				showerCount = 0
			}

			if showerRegion {
				mipCount++
				if mipCount == a.nLayersForMipRegion {
					mipRegion2 = true
					showerRegion = false
					showerCount = 0
				} else {
					bounds.mipRegion2Start = layer
				}
			}
		}

		if !mipTrackHitFound && showerTrackHitFound {
			if showerRegion {
				mipCount = 0
			}

			if mipRegion1 || mipRegion2 {
				showerCount++
				switch {
				case showerCount == a.nLayersForShowerRegion:
					if mipRegion1 {
						showerRegion = true
						mipRegion1 = false
						showerCount = 0
					}
					if mipRegion2 {
						// A second clean track segment followed by another
						// shower onset: stop refining boundaries.
						shouldContinue = false
					}
				case mipRegion1:
					bounds.showerStart = layer
				}
			}
		}

		if layersMissed > a.maxLayersMissed {
			shouldContinue = false
		}
	}

	return bounds, nil
}

// shouldFragment runs the layer scan and applies the fragmentation
// decision. The returned shower boundary layers feed the fragmenter.
func (a *MipPhotonSeparation) shouldFragment(ev *event.Store, cluster *event.Cluster, track types.Track) (bool, types.PseudoLayer, types.PseudoLayer, error) {
	bounds, err := a.scanRegions(ev, cluster, track)
	if err != nil {
		return false, types.UnsetLayer, types.UnsetLayer, err
	}

	return a.decideFragmentation(bounds), bounds.showerStart, bounds.showerEnd, nil
}

// decideFragmentation applies the accept rules to the scan's boundary
// layers. It requires evidence of a second mip region; beyond that, a
// shower with an end but no recorded onset always fragments, and two span
// rules cover the ordinary cases. Span arithmetic deliberately wraps on
// unset start layers, preserving the original decision surface.
func (a *MipPhotonSeparation) decideFragmentation(bounds regionBounds) bool {
	if !bounds.mipRegion2End.IsSet() {
		return false
	}

	if bounds.showerEnd.IsSet() && !bounds.showerStart.IsSet() {
		return true
	}

	if bounds.mipRegion2End-bounds.mipRegion2Start > a.minMipRegion2Span &&
		bounds.showerStart < a.maxShowerStartLayer &&
		bounds.showerEnd.IsSet() && bounds.showerEnd-bounds.showerStart > a.minShowerRegionSpan {
		return true
	}

	if bounds.showerStart < a.maxShowerStartLayer2 &&
		bounds.showerEnd.IsSet() && bounds.showerEnd-bounds.showerStart > a.minShowerRegionSpan2 {
		return true
	}

	return false
}
