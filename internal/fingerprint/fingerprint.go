// Package fingerprint computes content digests of event state. The manager
// logs them so that identical inputs can be checked to reproduce identical
// reconstruction output, which the sequential processing model guarantees.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/types"
)

type buffer struct {
	b []byte
}

func (w *buffer) u64(v uint64) {
	w.b = binary.LittleEndian.AppendUint64(w.b, v)
}

func (w *buffer) f64(v float64) {
	w.u64(math.Float64bits(v))
}

func (w *buffer) vec(v types.Vector3) {
	w.f64(v.X)
	w.f64(v.Y)
	w.f64(v.Z)
}

func (w *buffer) flag(v bool) {
	if v {
		w.b = append(w.b, 1)
	} else {
		w.b = append(w.b, 0)
	}
}

// Event digests the immutable inputs of an event: every hit's position,
// layer, kind, energy, cell size and flags, and every track's state and
// energy. Two stores built from the same slices digest identically.
func Event(st *event.Store) uint64 {
	var w buffer

	w.u64(uint64(st.NumHits()))
	for i := range st.NumHits() {
		hit, _ := st.Hit(types.HitID(i))
		w.vec(hit.Position)
		w.u64(uint64(hit.Layer))
		w.u64(uint64(hit.Kind))
		w.f64(hit.Energy)
		w.f64(hit.CellLengthScale)
		w.flag(hit.Isolated)
		w.flag(hit.PossibleMip)
	}

	w.u64(uint64(st.NumTracks()))
	for _, tid := range st.TrackIDs() {
		track, _ := st.Track(tid)
		w.f64(track.EnergyAtDCA)
		w.vec(track.CalorimeterState.Position)
		w.vec(track.CalorimeterState.Direction)
	}

	return xxh3.Hash(w.b)
}

// Clusters digests the canonical cluster list: per cluster the associated
// tracks and the full hit membership in layer order. Identical
// reconstruction output digests identically.
func Clusters(st *event.Store) uint64 {
	var w buffer

	ids := st.ClusterIDs()
	w.u64(uint64(len(ids)))

	for _, cid := range ids {
		c, err := st.Cluster(cid)
		if err != nil {
			continue
		}

		tracks := c.Tracks()
		w.u64(uint64(len(tracks)))
		for _, tid := range tracks {
			w.u64(uint64(tid))
		}

		layered, err := st.OrderedClusterHits(cid, true)
		if err != nil {
			continue
		}
		for _, lh := range layered {
			w.u64(uint64(lh.Layer))
			for _, hid := range lh.Hits {
				w.u64(uint64(hid))
			}
		}
	}

	return xxh3.Hash(w.b)
}
