// Package eventtest provides builders and geometry doubles for exercising
// the reconstruction algorithms against synthetic events.
package eventtest

import (
	"github.com/rete/pandora/types"
)

// LineHelix implements types.Helix as a straight line through Point along
// Direction. Real tracks come from an external helix fit; a line is exact
// for the high-momentum limit and keeps test distances easy to reason about.
type LineHelix struct {
	Point     types.Vector3
	Direction types.Vector3
}

var _ types.Helix = LineHelix{}

// DistanceToPoint returns the perpendicular separation vector from the line
// to the given point.
func (h LineHelix) DistanceToPoint(point types.Vector3) (types.Vector3, error) {
	dir := h.Direction.Unit()
	rel := point.Sub(h.Point)

	return rel.Sub(dir.Scale(rel.Dot(dir))), nil
}

// HitOption adjusts a test hit built by NewHit.
type HitOption func(*types.Hit)

// Isolated marks the hit as isolated.
func Isolated() HitOption {
	return func(h *types.Hit) {
		h.Isolated = true
	}
}

// PossibleMip marks the hit's deposit as mip-consistent.
func PossibleMip() HitOption {
	return func(h *types.Hit) {
		h.PossibleMip = true
	}
}

// InHCal places the hit in the hadronic calorimeter.
func InHCal() HitOption {
	return func(h *types.Hit) {
		h.Kind = types.HitHCal
	}
}

// CellLengthScale overrides the default 10 mm cell size.
func CellLengthScale(scale float64) HitOption {
	return func(h *types.Hit) {
		h.CellLengthScale = scale
	}
}

// NewHit builds an ECal hit with a 10 mm cell size at the given layer and
// position.
func NewHit(layer types.PseudoLayer, position types.Vector3, energy float64, opts ...HitOption) types.Hit {
	hit := types.Hit{
		Position:        position,
		Layer:           layer,
		Kind:            types.HitECal,
		Energy:          energy,
		CellLengthScale: 10,
	}
	for _, opt := range opts {
		opt(&hit)
	}

	return hit
}

// NewTrack builds a track whose helix is a straight line from position
// along direction, with the same state projected at the calorimeter face.
func NewTrack(energyAtDCA float64, position, direction types.Vector3) types.Track {
	return types.Track{
		Helix:       LineHelix{Point: position, Direction: direction},
		EnergyAtDCA: energyAtDCA,
		CalorimeterState: types.TrackState{
			Position:  position,
			Direction: direction.Unit(),
		},
	}
}
