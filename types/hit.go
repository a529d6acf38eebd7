package types

// HitID is a stable handle to a hit in an event store. Hit handles index
// the store's arena directly and remain valid for the lifetime of the event.
type HitID int

// TrackID is a stable handle to a track in an event store.
type TrackID int

// ClusterID is a stable handle to a cluster in an event store. Cluster
// handles are never reused within one event, so a deleted cluster's ID
// stays invalid rather than aliasing a newer cluster.
type ClusterID int

// HitKind identifies the detector subsystem that recorded a hit. The two
// subsystems carry distinct geometric pad-width constants.
type HitKind uint8

const (
	// HitECal marks a hit in the electromagnetic calorimeter.
	HitECal HitKind = iota

	// HitHCal marks a hit in the hadronic calorimeter.
	HitHCal
)

// String returns the conventional short name of the hit kind.
func (k HitKind) String() string {
	switch k {
	case HitECal:
		return "ecal"
	case HitHCal:
		return "hcal"
	default:
		return "unknown"
	}
}

// Hit is a single calorimeter energy deposit.
//
// Hits are immutable once loaded into an event store; the only mutable
// per-hit state is the availability flag, which lives on the store's arena
// entry rather than on the hit itself.
type Hit struct {
	// Position is the cell centre in detector coordinates.
	Position Vector3 `yaml:"position"`

	// Layer is the pseudo layer the cell belongs to.
	Layer PseudoLayer `yaml:"layer"`

	// Kind selects the subsystem-specific pad-width constant used when
	// normalizing track-to-hit distances.
	Kind HitKind `yaml:"kind"`

	// Energy is the hadronic-scale energy of the deposit, in GeV.
	Energy float64 `yaml:"energy"`

	// CellLengthScale is the characteristic cell size, in millimetres.
	CellLengthScale float64 `yaml:"cellLengthScale"`

	// Isolated marks hits flagged by upstream isolation tagging. A
	// configuration switch decides whether isolated hits take part in
	// clustering.
	Isolated bool `yaml:"isolated"`

	// PossibleMip marks hits whose deposit is consistent with a minimum
	// ionizing particle.
	PossibleMip bool `yaml:"possibleMip"`
}
