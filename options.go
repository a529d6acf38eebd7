package pandora

// Option configures a Pandora manager.
type Option func(*Pandora)

// WithLogger sets the manager's logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	log := logging.NewSlogDefault()
//	p := pandora.New(pandora.WithLogger(log))
func WithLogger(logger Logger) Option {
	return func(p *Pandora) {
		p.log = logger
	}
}

// WithMetrics sets the manager's metrics collector. Algorithms created
// through the registry receive their own collectors via their factories;
// this one records per-run durations observed by the manager.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
func WithMetrics(metrics MetricsCollector) Option {
	return func(p *Pandora) {
		p.metrics = metrics
	}
}
