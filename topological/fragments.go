package topological

import (
	"errors"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/types"
)

// fragmentResult is a lazily created fragment cluster; ok reports whether
// any hit reached it.
type fragmentResult struct {
	id types.ClusterID
	ok bool
}

// makeFragments partitions the original cluster's hits, isolated set
// included, into a track-seeded mip fragment and a hit-seeded photon
// fragment. A hit goes to the mip side when it lies close to the track
// projection or outside the shower layer range; fragments are created on
// first use, so a side nothing qualifies for stays absent.
func (a *MipPhotonSeparation) makeFragments(ev *event.Store, cid types.ClusterID, cluster *event.Cluster,
	tid types.TrackID, track types.Track, showerStart, showerEnd types.PseudoLayer) (mip, photon fragmentResult, err error) {
	layers, err := ev.OrderedClusterHits(cid, true)
	if err != nil {
		return mip, photon, err
	}

	for _, lh := range layers {
		for _, hid := range lh.Hits {
			hit, err := ev.Hit(hid)
			if err != nil {
				return mip, photon, err
			}

			// A hit beyond the track separation window keeps the zero
			// distance and so lands on the mip side.
			var distance float64
			d, err := a.distanceToTrack(cluster, track, hit)
			switch {
			case err == nil:
				distance = d
			case errors.Is(err, types.ErrOutOfRange):
			default:
				return mip, photon, err
			}

			if distance < a.genericDistanceCut || lh.Layer < showerStart || lh.Layer > showerEnd {
				if !mip.ok {
					if mip.id, err = ev.CreateClusterFromTrack(tid); err != nil {
						return mip, photon, err
					}
					mip.ok = true
				}
				if err := ev.AddHitToCluster(mip.id, hid); err != nil {
					return mip, photon, err
				}
			} else {
				if !photon.ok {
					if photon.id, err = ev.CreateClusterFromHit(hid); err != nil {
						return mip, photon, err
					}
					photon.ok = true

					continue
				}
				if err := ev.AddHitToCluster(photon.id, hid); err != nil {
					return mip, photon, err
				}
			}
		}
	}

	return mip, photon, nil
}
