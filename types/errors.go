package types

import "errors"

// Sentinel errors shared by the event store and the algorithm packages.
//
// The propagation policy is uniform: ErrOutOfRange is a benign per-candidate
// skip signal that callers filter locally with errors.Is and never surface;
// every other error aborts the current algorithm pass for the event.
var (
	// ErrInvalidParameter is returned when a required input list is empty
	// or a handle does not resolve to a live entry.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound is returned by settings lookups when a key is absent.
	// Callers substitute their default value and continue.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange signals that a candidate hit lies beyond the maximum
	// track separation. It means "skip this candidate", not failure.
	ErrOutOfRange = errors.New("out of range")

	// ErrMisconfigured is returned when configuration produces a
	// degenerate computation, such as a zero distance normalization.
	ErrMisconfigured = errors.New("misconfigured algorithm")
)
