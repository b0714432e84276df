package rendergraph

// GraphOption configures a Graph during creation.
//
// Example:
//
//	g := rendergraph.NewGraph(factory,
//		rendergraph.WithRenderScale(0.5),
//		rendergraph.WithContinueOnError(true))
type GraphOption func(*graphOptions)

// graphOptions holds optional configuration for Graph creation.
type graphOptions struct {
	renderScale     float32
	continueOnError bool
	pruneStale      bool
	slots           *Slots
	registry        *Registry
}

// defaultOptions returns the default graph options.
func defaultOptions() graphOptions {
	return graphOptions{
		renderScale: 1,
		pruneStale:  true,
	}
}

// WithRenderScale sets the ratio between the render viewport and the
// output viewport. Passes sizing intermediate targets from
// Builder.RenderViewport render at this scale. Values <= 0 are ignored.
func WithRenderScale(scale float32) GraphOption {
	return func(o *graphOptions) {
		if scale > 0 {
			o.renderScale = scale
		}
	}
}

// WithContinueOnError keeps configuring and executing the remaining passes
// when one fails. Failed passes are skipped until the next configuration
// cycle and every error is returned joined.
//
// By default the first failing pass aborts the cycle or frame.
func WithContinueOnError(enabled bool) GraphOption {
	return func(o *graphOptions) {
		o.continueOnError = enabled
	}
}

// WithPruneStale controls whether resources that passes declared in an
// earlier cycle, and that no pass declared or fetched during the current
// one, are removed at its end. Resources the host creates outside a
// cycle are never pruned. Enabled by default.
func WithPruneStale(enabled bool) GraphOption {
	return func(o *graphOptions) {
		o.pruneStale = enabled
	}
}

// WithSlots makes the graph publish side-channel handles into s instead of
// a private slot service.
func WithSlots(s *Slots) GraphOption {
	return func(o *graphOptions) {
		o.slots = s
	}
}

// WithRegistry makes the graph store its resources in r.
func WithRegistry(r *Registry) GraphOption {
	return func(o *graphOptions) {
		o.registry = r
	}
}
