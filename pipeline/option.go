package pipeline

import "github.com/flizzeri/schemaforge/facade"

// Option configures optional observability/wiring hooks on an [Extract]
// call that spec.md's public signature itself has no room for. None of
// these are required: with no options Extract uses the goast facade,
// registers no metrics collector and calls no progress hook.
type Option func(*runConfig)

type runConfig struct {
	facade       facade.ProgramFacade
	progressHook func(done, total int)
	metrics      *Metrics
}

// WithFacade overrides the [facade.ProgramFacade] used to load and
// introspect the program. Defaults to [goast.New] when omitted; tests
// and alternative-host embedders supply their own.
func WithFacade(f facade.ProgramFacade) Option {
	return func(c *runConfig) { c.facade = f }
}

// WithProgressHook registers a callback invoked after each entity-tagged
// symbol finishes processing, with the running count and the total.
func WithProgressHook(hook func(done, total int)) Option {
	return func(c *runConfig) { c.progressHook = hook }
}

// WithMetrics attaches a [Metrics] set that Extract increments as it
// runs.
func WithMetrics(m *Metrics) Option {
	return func(c *runConfig) { c.metrics = m }
}
