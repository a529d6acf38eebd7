// Package types contains the shared data model and small interfaces used
// across the pandora packages.
//
// It has no inward dependencies, which lets the event store, the algorithm
// packages and the root pandora package all depend on it without import
// cycles. The root package re-exports the commonly used names via type
// aliases for convenience.
package types
