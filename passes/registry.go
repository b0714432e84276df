package passes

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/rendergraph"
)

var (
	// ErrUnknownPass is returned by Build for a name with no constructor.
	ErrUnknownPass = errors.New("passes: unknown pass")

	// ErrNoOutput is returned by passes that render to the graph output
	// when the graph has none.
	ErrNoOutput = errors.New("passes: graph has no output target")
)

// Constructor creates a pass from the graph configuration.
type Constructor func(cfg rendergraph.Config) rendergraph.Pass

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

func init() {
	Register(NameShadow, func(cfg rendergraph.Config) rendergraph.Pass { return NewShadow(cfg.ShadowMapSize) })
	Register(NameBackground, func(rendergraph.Config) rendergraph.Pass { return NewBackground(nil) })
	Register(NameGeometry, func(rendergraph.Config) rendergraph.Pass { return NewGeometry() })
	Register(NameLighting, func(rendergraph.Config) rendergraph.Pass { return NewLighting() })
	Register(NameBlur, func(rendergraph.Config) rendergraph.Pass { return NewBlur(DefaultBlurRadius) })
	Register(NameComposite, func(rendergraph.Config) rendergraph.Pass { return NewComposite() })
	Register(NameOverlay, func(rendergraph.Config) rendergraph.Pass { return NewOverlay() })
}

// Register associates a constructor with a pass name, replacing any
// previous registration.
//
// Typical usage from a package defining its own passes:
//
//	func init() {
//	    passes.Register("fog", func(cfg rendergraph.Config) rendergraph.Pass {
//	        return NewFog()
//	    })
//	}
func Register(name string, ctor Constructor) {
	if name == "" || ctor == nil {
		panic("passes: Register with empty name or nil constructor")
	}
	registryMu.Lock()
	registry[name] = ctor
	registryMu.Unlock()
}

// Lookup returns the constructor registered for name.
func Lookup(name string) (Constructor, bool) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	return ctor, ok
}

// Names returns the registered pass names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build constructs the named passes in order. An empty list selects
// DefaultOrder.
func Build(names []string, cfg rendergraph.Config) ([]rendergraph.Pass, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}
	out := make([]rendergraph.Pass, 0, len(names))
	for _, name := range names {
		ctor, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPass, name)
		}
		out = append(out, ctor(cfg))
	}
	return out, nil
}

// Install builds the named passes and adds them to g in order.
func Install(g *rendergraph.Graph, names []string, cfg rendergraph.Config) error {
	list, err := Build(names, cfg)
	if err != nil {
		return err
	}
	for _, p := range list {
		if err := g.AddPass(p); err != nil {
			return err
		}
	}
	return nil
}
