package rendergraph

import "fmt"

// Pass is one stage of a frame.
//
// Configure declares the resources the pass owns and looks up the ones it
// reads. It runs again after every resize or reconfiguration and must be
// idempotent: declaring an unchanged description returns the existing
// object. Execute records the pass's work for one frame. Dispose releases
// objects the pass keeps outside the registry and its slot publications;
// it may be called more than once.
type Pass interface {
	Name() string
	Configure(b *Builder) error
	Execute(ctx RenderContext, scene Scene, cam *Camera, b *Builder) error
	Dispose()
}

// Initializer is implemented by passes that resolve resources declared by
// later passes. Init runs after every pass has configured.
type Initializer interface {
	Init(b *Builder) error
}

// PassState is the lifecycle state of a pass within a graph.
type PassState int

const (
	// PassUnconfigured has not run Configure yet.
	PassUnconfigured PassState = iota
	// PassConfigured has run Configure.
	PassConfigured
	// PassInitialized has run Init, or has no Init, and can execute.
	PassInitialized
	// PassExecuting is inside Execute.
	PassExecuting
	// PassDisposed has run Dispose.
	PassDisposed
	// PassFailed returned an error and is skipped until the next cycle.
	PassFailed
)

// String returns the state name.
func (s PassState) String() string {
	switch s {
	case PassUnconfigured:
		return "unconfigured"
	case PassConfigured:
		return "configured"
	case PassInitialized:
		return "initialized"
	case PassExecuting:
		return "executing"
	case PassDisposed:
		return "disposed"
	case PassFailed:
		return "failed"
	default:
		return fmt.Sprintf("PassState(%d)", int(s))
	}
}

// PassError reports the pass and phase an error came from.
type PassError struct {
	Pass  string
	Phase Phase
	Err   error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("rendergraph: pass %q %s: %v", e.Pass, e.Phase, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// passSlot is a pass and its state inside a graph.
type passSlot struct {
	pass  Pass
	state PassState
}
