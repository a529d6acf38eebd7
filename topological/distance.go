package topological

import (
	"fmt"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/types"
)

// distanceToTrack scores a hit against the track's projection at the
// calorimeter face, normalized by the hit's pad width.
//
// The score is the perpendicular component of the hit-to-projection
// separation, relative to the cluster's initial direction, divided by a cut
// width that widens linearly with the raw separation. A score below the
// generic distance cut means the hit is consistent with the track path.
//
// Hits whose raw separation reaches MaxTrackSeparation return
// types.ErrOutOfRange, which callers treat as "skip this candidate". A zero
// MaxTrackSeparation or a zero cut width is a types.ErrMisconfigured.
func (a *MipPhotonSeparation) distanceToTrack(cluster *event.Cluster, track types.Track, hit types.Hit) (float64, error) {
	if a.maxTrackSeparation == 0 {
		return 0, fmt.Errorf("zero max track separation: %w", types.ErrMisconfigured)
	}

	positionDifference := hit.Position.Sub(track.CalorimeterState.Position)
	separation := positionDifference.Magnitude()

	if separation >= a.maxTrackSeparation {
		return 0, types.ErrOutOfRange
	}

	perpendicular := cluster.InitialDirection().Cross(positionDifference).Magnitude()
	flexibility := 1 + a.trackPathWidth*(separation/a.maxTrackSeparation)

	padWidths := a.additionalPadWidthsECal
	if hit.Kind == types.HitHCal {
		padWidths = a.additionalPadWidthsHCal
	}

	cutWidth := flexibility * padWidths * hit.CellLengthScale
	if cutWidth == 0 {
		return 0, fmt.Errorf("zero cut width: %w", types.ErrMisconfigured)
	}

	return perpendicular / cutWidth, nil
}
