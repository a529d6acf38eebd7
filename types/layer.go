package types

import "math"

// PseudoLayer is a discretized depth index within the calorimeter along a
// particle's path. Layers are totally ordered; larger values are deeper.
type PseudoLayer uint32

const (
	// TrackProjectionLayer is the pseudo layer assigned to a track's
	// projection onto the calorimeter front face. Real hit layers start
	// immediately after it.
	TrackProjectionLayer PseudoLayer = 0

	// UnsetLayer is the sentinel for "no layer recorded". It compares
	// greater than any real layer.
	UnsetLayer PseudoLayer = math.MaxUint32
)

// IsSet reports whether l holds a real layer rather than the sentinel.
func (l PseudoLayer) IsSet() bool {
	return l != UnsetLayer
}
