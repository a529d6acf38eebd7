package pandora

import "github.com/rete/pandora/types"

// Re-export the core value types from the types subpackage.
//
// Aliases give users a convenient pandora.Hit, pandora.Track and so on
// while letting the algorithm and event packages depend on types without
// importing the root package.
type (
	Vector3     = types.Vector3
	PseudoLayer = types.PseudoLayer
	HitKind     = types.HitKind
	Hit         = types.Hit
	TrackState  = types.TrackState
	Track       = types.Track
	HitID       = types.HitID
	TrackID     = types.TrackID
	ClusterID   = types.ClusterID
)

// Re-export the collaborator interfaces and function contracts.
type (
	Helix                     = types.Helix
	Logger                    = types.Logger
	MetricsCollector          = types.MetricsCollector
	TrackClusterCompatibility = types.TrackClusterCompatibility
)

// Re-export the layer and hit kind constants.
const (
	TrackProjectionLayer = types.TrackProjectionLayer
	UnsetLayer           = types.UnsetLayer

	HitECal = types.HitECal
	HitHCal = types.HitHCal
)
