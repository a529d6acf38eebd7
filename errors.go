package pandora

import "errors"

// Sentinel errors returned by the Pandora manager.
var (
	// ErrNilEvent is returned when an event store is required but nil.
	ErrNilEvent = errors.New("event store is required")

	// ErrNilFactory is returned when a nil algorithm factory is registered.
	ErrNilFactory = errors.New("algorithm factory is required")
)
