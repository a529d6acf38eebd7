package types

// TrackState is a position and unit direction on a fitted track, evaluated
// at a particular surface (here: the calorimeter front face).
type TrackState struct {
	Position  Vector3 `yaml:"position"`
	Direction Vector3 `yaml:"direction"`
}

// Helix is the contract consumed from the external helix-fit provider.
//
// Implementations must be deterministic and side-effect free; the greedy
// assignment pass calls DistanceToPoint once per (track, hit) pair.
type Helix interface {
	// DistanceToPoint returns the separation vector from the helix to the
	// given point, i.e. point minus its closest approach on the helix.
	DistanceToPoint(point Vector3) (Vector3, error)
}

// Track is a reconstructed charged-particle trajectory. Tracks are
// immutable for the purposes of this package.
type Track struct {
	// Helix is the fitted trajectory used for helix-to-hit distances.
	Helix Helix

	// EnergyAtDCA is the track's energy estimate at its distance of
	// closest approach to the interaction point, in GeV. It caps the
	// energy a track-seeded cluster may absorb.
	EnergyAtDCA float64

	// CalorimeterState is the projected track state at the calorimeter
	// front face.
	CalorimeterState TrackState
}
