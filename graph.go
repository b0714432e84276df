// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendergraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/rendergraph/resource"
)

// Graph runs an ordered list of passes over a shared registry.
//
// Every configuration cycle (Setup, Resize, Reconfigure) disposes the
// passes in reverse order, runs Configure on all of them, then Init on all
// of them. Execute then runs them once per frame in declaration order.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	reg     *Registry
	slots   *Slots
	builder *Builder
	passes  []*passSlot
	opts    graphOptions

	setup  bool // Setup has been called
	ready  bool // the last configuration cycle succeeded
	closed bool
	frame  uint64
}

// NewGraph creates an empty graph building resource kinds with factory.
// The factory may be nil when passes only use custom descriptors.
func NewGraph(factory *resource.Factory, opts ...GraphOption) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.slots == nil {
		o.slots = NewSlots()
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	b := NewBuilder(o.registry, factory, o.slots)
	b.renderScale = o.renderScale
	return &Graph{
		reg:     o.registry,
		slots:   o.slots,
		builder: b,
		opts:    o,
	}
}

// AddPass appends p to the graph. Passes added after Setup take part from
// the next Resize or Reconfigure; until then Execute returns ErrNotReady.
func (g *Graph) AddPass(p Pass) error {
	if g.closed {
		return ErrGraphClosed
	}
	if p == nil {
		return ErrNilPass
	}
	if g.find(p.Name()) >= 0 {
		return fmt.Errorf("%w: %q", ErrPassAlreadyAdded, p.Name())
	}
	g.passes = append(g.passes, &passSlot{pass: p})
	g.ready = false
	return nil
}

// RemovePass disposes and removes the pass named name. Resources only that
// pass declared are pruned by the next configuration cycle.
func (g *Graph) RemovePass(name string) bool {
	i := g.find(name)
	if i < 0 {
		return false
	}
	s := g.passes[i]
	if s.state != PassUnconfigured && s.state != PassDisposed {
		g.builder.setPhase(PhaseDispose)
		s.pass.Dispose()
		g.builder.setPhase(PhaseIdle)
	}
	g.passes = slices.Delete(g.passes, i, i+1)
	g.ready = false
	return true
}

// Setup sets the output target and viewport and runs the first
// configuration cycle.
func (g *Graph) Setup(output OutputTarget, vp Viewport) error {
	if g.closed {
		return ErrGraphClosed
	}
	g.builder.output = output
	g.builder.outputVP = vp
	g.setup = true
	Logger().Info("rendergraph: setup", "passes", len(g.passes), "width", vp.Width, "height", vp.Height)
	return g.configure()
}

// Resize changes the output viewport and reconfigures every pass.
// Resources whose descriptions depend on the viewport are rebuilt in
// place; their handles stay valid.
func (g *Graph) Resize(vp Viewport) error {
	if g.closed {
		return ErrGraphClosed
	}
	if !g.setup {
		return ErrNotReady
	}
	g.builder.outputVP = vp
	if r, ok := g.builder.output.(interface{ Resize(width, height uint32) }); ok {
		w, h := vp.Size()
		r.Resize(w, h)
	}
	Logger().Info("rendergraph: resize", "width", vp.Width, "height", vp.Height)
	return g.configure()
}

// Reconfigure runs a configuration cycle with the current output.
func (g *Graph) Reconfigure() error {
	if g.closed {
		return ErrGraphClosed
	}
	if !g.setup {
		return ErrNotReady
	}
	return g.configure()
}

// configure disposes every configured pass, then runs Configure and Init
// on all passes in order.
func (g *Graph) configure() error {
	g.ready = false
	g.dispose()
	g.reg.BeginCycle()
	defer g.reg.EndCycle()

	var errs []error
	fail := func(s *passSlot, phase Phase, err error) error {
		s.state = PassFailed
		perr := &PassError{Pass: s.pass.Name(), Phase: phase, Err: err}
		Logger().Warn("rendergraph: pass failed", "pass", s.pass.Name(), "phase", phase, "err", err)
		errs = append(errs, perr)
		return perr
	}
	defer g.builder.setPhase(PhaseIdle)

	g.builder.setPhase(PhaseConfigure)
	for _, s := range g.passes {
		if err := s.pass.Configure(g.builder); err != nil {
			if perr := fail(s, PhaseConfigure, err); !g.opts.continueOnError {
				return perr
			}
			continue
		}
		s.state = PassConfigured
	}

	g.builder.setPhase(PhaseInit)
	for _, s := range g.passes {
		if s.state != PassConfigured {
			continue
		}
		if in, ok := s.pass.(Initializer); ok {
			if err := in.Init(g.builder); err != nil {
				if perr := fail(s, PhaseInit, err); !g.opts.continueOnError {
					return perr
				}
				continue
			}
		}
		s.state = PassInitialized
	}

	if g.opts.pruneStale && len(errs) == 0 {
		if stale := g.reg.Prune(); len(stale) > 0 {
			Logger().Debug("rendergraph: pruned", "names", stale)
		}
	}
	g.ready = true
	return errors.Join(errs...)
}

// dispose runs Dispose on configured passes in reverse order.
func (g *Graph) dispose() {
	g.builder.setPhase(PhaseDispose)
	for _, s := range slices.Backward(g.passes) {
		if s.state == PassUnconfigured || s.state == PassDisposed {
			continue
		}
		s.pass.Dispose()
		s.state = PassDisposed
	}
	g.builder.setPhase(PhaseIdle)
}

// Execute runs every initialized pass once, in declaration order.
func (g *Graph) Execute(ctx RenderContext, scene Scene, cam *Camera) error {
	if g.closed {
		return ErrGraphClosed
	}
	if !g.ready {
		return ErrNotReady
	}
	if cam != nil {
		cam.SetViewport(g.builder.RenderViewport())
	}

	var errs []error
	g.builder.setPhase(PhaseExecute)
	defer g.builder.setPhase(PhaseIdle)
	for _, s := range g.passes {
		if s.state != PassInitialized {
			continue
		}
		s.state = PassExecuting
		err := s.pass.Execute(ctx, scene, cam, g.builder)
		s.state = PassInitialized
		if err != nil {
			perr := &PassError{Pass: s.pass.Name(), Phase: PhaseExecute, Err: err}
			if !g.opts.continueOnError {
				return perr
			}
			Logger().Warn("rendergraph: pass failed", "pass", s.pass.Name(), "phase", PhaseExecute, "err", err)
			errs = append(errs, perr)
		}
	}
	g.frame++
	return errors.Join(errs...)
}

// Close disposes every pass, releases all resources and clears the slots.
// Close is idempotent; a closed graph cannot be set up again.
func (g *Graph) Close() {
	if g.closed {
		return
	}
	g.dispose()
	g.reg.Close()
	g.slots.Reset()
	g.closed = true
	g.ready = false
	Logger().Info("rendergraph: closed", "frames", g.frame)
}

// State returns the lifecycle state of the pass named name, or
// PassUnconfigured when no such pass exists.
func (g *Graph) State(name string) PassState {
	if i := g.find(name); i >= 0 {
		return g.passes[i].state
	}
	return PassUnconfigured
}

// Passes returns the pass names in execution order.
func (g *Graph) Passes() []string {
	names := make([]string, len(g.passes))
	for i, s := range g.passes {
		names[i] = s.pass.Name()
	}
	return names
}

// Ready reports whether the graph can execute.
func (g *Graph) Ready() bool { return g.ready && !g.closed }

// Frame returns the number of executed frames.
func (g *Graph) Frame() uint64 { return g.frame }

// Builder returns the builder passed to every pass.
func (g *Graph) Builder() *Builder { return g.builder }

// Registry returns the registry holding the graph's resources.
func (g *Graph) Registry() *Registry { return g.reg }

// Slots returns the graph's side-channel slot service.
func (g *Graph) Slots() *Slots { return g.slots }

func (g *Graph) find(name string) int {
	return slices.IndexFunc(g.passes, func(s *passSlot) bool { return s.pass.Name() == name })
}
