package pandora

import (
	"fmt"
	"sync"
	"time"

	"github.com/rete/pandora/algorithm"
	"github.com/rete/pandora/event"
	"github.com/rete/pandora/internal/fingerprint"
	"github.com/rete/pandora/internal/logging"
	"github.com/rete/pandora/internal/metrics"
)

// Pandora is the reconstruction manager: it owns the algorithm registry,
// holds the configured algorithm instances, and runs them over event
// stores.
//
// Pandora implements algorithm.Runner, so algorithms that delegate to
// daughter algorithms (remnant clustering, isolated hit association,
// track-cluster association) can be handed the manager itself.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Distinct event stores may be processed concurrently; a single store
//     must only ever be owned by one reconstruction pass at a time
//
// Lifecycle:
//   - Create with New()
//   - Register algorithm factories with RegisterAlgorithm()
//   - Configure instances with ConfigureAlgorithm()
//   - Run passes with Process() or RunAlgorithm()
type Pandora struct {
	registry *algorithm.Registry
	log      Logger
	metrics  MetricsCollector

	mu        sync.Mutex
	instances map[string]algorithm.Algorithm
}

var _ algorithm.Runner = (*Pandora)(nil)

// New creates a reconstruction manager with a no-op logger and metrics
// collector, overridable through options.
func New(opts ...Option) *Pandora {
	p := &Pandora{
		registry:  algorithm.NewRegistry(),
		log:       logging.NewNop(),
		metrics:   metrics.NewNop(),
		instances: make(map[string]algorithm.Algorithm),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RegisterAlgorithm binds an algorithm factory to a name. Registering the
// same name twice is an error.
func (p *Pandora) RegisterAlgorithm(name string, factory algorithm.Factory) error {
	if factory == nil {
		return fmt.Errorf("algorithm %q: %w", name, ErrNilFactory)
	}

	return p.registry.Register(name, factory)
}

// Algorithms returns the registered algorithm names in sorted order.
func (p *Pandora) Algorithms() []string {
	return p.registry.Names()
}

// ConfigureAlgorithm creates a fresh instance of the named algorithm and
// configures it from the given settings. Reconfiguring a name replaces the
// previous instance; algorithm runs already in flight keep the instance
// they started with.
func (p *Pandora) ConfigureAlgorithm(name string, settings algorithm.Settings) error {
	inst, err := p.registry.Create(name)
	if err != nil {
		return err
	}
	if err := inst.Configure(settings); err != nil {
		return fmt.Errorf("configure algorithm %q: %w", name, err)
	}

	p.mu.Lock()
	p.instances[name] = inst
	p.mu.Unlock()

	p.log.Info("algorithm configured", "algorithm", name)

	return nil
}

// RunAlgorithm runs the named algorithm over the event store. A registered
// algorithm that was never explicitly configured is configured on first use
// with empty settings, keeping its documented defaults.
func (p *Pandora) RunAlgorithm(name string, ev *event.Store) error {
	if ev == nil {
		return fmt.Errorf("run algorithm %q: %w", name, ErrNilEvent)
	}

	inst, err := p.instance(name)
	if err != nil {
		return err
	}

	start := time.Now()
	runErr := inst.Run(ev)
	elapsed := time.Since(start)

	p.metrics.RecordAlgorithmRun(name, elapsed.Seconds())

	if runErr != nil {
		p.log.Error("algorithm failed", "algorithm", name, "error", runErr)

		return fmt.Errorf("algorithm %q: %w", name, runErr)
	}

	p.log.Debug("algorithm completed",
		"algorithm", name,
		"duration", elapsed,
		"clusters", len(ev.ClusterIDs()),
	)

	return nil
}

// Process runs a sequence of algorithms over one event and logs the input
// and output content digests, so that reruns over identical inputs can be
// checked to reproduce identical cluster output.
func (p *Pandora) Process(ev *event.Store, names ...string) error {
	if ev == nil {
		return fmt.Errorf("process event: %w", ErrNilEvent)
	}

	p.log.Info("event processing started",
		"hits", ev.NumHits(),
		"tracks", ev.NumTracks(),
		"fingerprint", fmt.Sprintf("%016x", fingerprint.Event(ev)),
	)

	for _, name := range names {
		if err := p.RunAlgorithm(name, ev); err != nil {
			return err
		}
	}

	p.log.Info("event processing finished",
		"clusters", len(ev.ClusterIDs()),
		"fingerprint", fmt.Sprintf("%016x", fingerprint.Clusters(ev)),
	)

	return nil
}

func (p *Pandora) instance(name string) (algorithm.Algorithm, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if inst, ok := p.instances[name]; ok {
		return inst, nil
	}

	inst, err := p.registry.Create(name)
	if err != nil {
		return nil, err
	}
	if err := inst.Configure(algorithm.Settings{}); err != nil {
		return nil, fmt.Errorf("configure algorithm %q: %w", name, err)
	}
	p.instances[name] = inst

	return inst, nil
}
