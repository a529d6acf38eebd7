package types

import "math"

// TrackClusterCompatibility scores how well a cluster's energy matches its
// associated track's expected energy. It is the external chi-style
// goodness-of-fit contract: values near zero mean compatible, the sign
// follows clusterEnergy - trackEnergy.
type TrackClusterCompatibility func(clusterEnergy, trackEnergy float64) float64

// DefaultCompatibility scores the energy match assuming a hadronic energy
// resolution of 60%/sqrt(E). A non-positive track energy yields an
// arbitrarily poor score rather than a division by zero.
func DefaultCompatibility(clusterEnergy, trackEnergy float64) float64 {
	if trackEnergy <= 0 {
		return math.MaxFloat32
	}

	sigma := 0.6 * math.Sqrt(trackEnergy)

	return (clusterEnergy - trackEnergy) / sigma
}
