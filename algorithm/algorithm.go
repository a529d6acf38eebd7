// Package algorithm defines the capability interface implemented by every
// reconstruction algorithm, the named registry used to instantiate them,
// and the settings bag they are configured from.
package algorithm

import (
	"github.com/rete/pandora/event"
)

// Algorithm is the run-plus-configure capability implemented by every
// reconstruction algorithm.
//
// Configure is called once, before the first Run, with the algorithm's
// settings; absent keys keep the algorithm's documented defaults. Run
// processes one event's store and either completes it or returns an error
// that aborts the pass, leaving the event state as the store's transactional
// guarantees define.
type Algorithm interface {
	Configure(settings Settings) error
	Run(ev *event.Store) error
}

// Factory constructs a fresh, unconfigured algorithm instance.
type Factory func() Algorithm

// Runner dispatches a named daughter algorithm on an event. The pandora
// manager implements it; algorithms that delegate (remnant clustering,
// isolated hit association, track-cluster association) hold a Runner
// rather than calling each other directly.
type Runner interface {
	RunAlgorithm(name string, ev *event.Store) error
}
