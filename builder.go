package rendergraph

//go:generate go run ./internal/cmd/genkinds -o builder_kinds.go

import (
	"fmt"
	"reflect"

	"github.com/gogpu/rendergraph/resource"
)

// Phase is the lifecycle phase the graph is in.
type Phase int

const (
	// PhaseIdle is outside any pass callback.
	PhaseIdle Phase = iota
	// PhaseConfigure runs pass Configure callbacks.
	PhaseConfigure
	// PhaseInit runs pass Init callbacks.
	PhaseInit
	// PhaseExecute runs pass Execute callbacks.
	PhaseExecute
	// PhaseDispose runs pass Dispose callbacks.
	PhaseDispose
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfigure:
		return "configure"
	case PhaseInit:
		return "init"
	case PhaseExecute:
		return "execute"
	case PhaseDispose:
		return "dispose"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Builder is the facade passes use to declare and look up resources.
//
// For every resource kind in package resource, Builder has a family of
// methods: CreateX, CreateXShared, GetX, GetOrAddX, UpdateX, RemoveX and
// AllXs. They are generated into builder_kinds.go.
//
// Builder also exposes frame-global read-only state: the output target and
// the output and render viewports.
type Builder struct {
	reg     *Registry
	factory *resource.Factory
	slots   *Slots

	output      OutputTarget
	outputVP    Viewport
	renderScale float32

	phase Phase
}

// NewBuilder creates a builder over reg building objects with factory.
// The factory may be nil for graphs that only use CreateResource with
// custom factories.
func NewBuilder(reg *Registry, factory *resource.Factory, slots *Slots) *Builder {
	if slots == nil {
		slots = NewSlots()
	}
	return &Builder{
		reg:         reg,
		factory:     factory,
		slots:       slots,
		renderScale: 1,
	}
}

// Registry returns the underlying registry.
func (b *Builder) Registry() *Registry { return b.reg }

// Factory returns the resource factory.
func (b *Builder) Factory() *resource.Factory { return b.factory }

// Slots returns the side-channel slot service.
func (b *Builder) Slots() *Slots { return b.slots }

// Phase returns the current lifecycle phase.
func (b *Builder) Phase() Phase { return b.phase }

// Output returns the output target.
func (b *Builder) Output() OutputTarget { return b.output }

// OutputViewport returns the viewport of the output target.
func (b *Builder) OutputViewport() Viewport { return b.outputVP }

// RenderViewport returns the viewport intermediate targets are rendered
// at: the output viewport scaled by the render scale.
func (b *Builder) RenderViewport() Viewport {
	if b.renderScale == 1 {
		return b.outputVP
	}
	return b.outputVP.Scaled(b.renderScale)
}

// RenderScale returns the render scale.
func (b *Builder) RenderScale() float32 { return b.renderScale }

func (b *Builder) setPhase(p Phase) { b.phase = p }

// mutating warns about registry changes during Execute. Resources must be
// declared in Configure or Init; execution only reads handles.
func (b *Builder) mutating(op, name string) {
	if b.phase == PhaseExecute {
		Logger().Warn("rendergraph: resource mutated during execute", "op", op, "name", name)
	}
}

// CreateResource establishes or updates name from a custom descriptor.
// It is the generic form of the CreateX methods.
func CreateResource[T, D any](b *Builder, name string, d *Descriptor[D, T]) (*Ref[T], error) {
	b.mutating("create", name)
	return Create(b.reg, name, d)
}

// UpdateResource forces a rebuild of name from desc.
func UpdateResource[T, D any](b *Builder, name string, desc D) (*Ref[T], error) {
	b.mutating("update", name)
	return Update[D, T](b.reg, name, desc)
}

// GetResource returns the handle for a required resource. An absent name
// is a *NotFoundError; another kind is a *TypeMismatchError.
func GetResource[T any](b *Builder, name string) (*Ref[T], error) {
	ref, err := Get[T](b.reg, name)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, &NotFoundError{Name: name, Reason: "get"}
	}
	return ref, nil
}

// GetOrAddResource returns the handle for name, declaring a forward
// reference when absent.
func GetOrAddResource[T any](b *Builder, name string) (*Ref[T], error) {
	b.mutating("get-or-add", name)
	return GetOrAdd[T](b.reg, name)
}

// RemoveResource removes name if it holds an object of type T.
func RemoveResource[T any](b *Builder, name string) bool {
	ref, err := Get[T](b.reg, name)
	if err != nil || ref == nil {
		return false
	}
	b.mutating("remove", name)
	return b.reg.Remove(name)
}

// createKind builds a descriptor for a resource kind and creates it.
func createKind[D, T any](b *Builder, name string, desc D, factory func(D) (T, error), flags []CreationFlags) (*Ref[T], error) {
	if b.factory == nil {
		return nil, &CreationError{Name: name, Kind: reflect.TypeFor[T](), Err: resource.ErrNilDevice}
	}
	return CreateResource(b, name, NewDescriptor(desc, factory, flags...))
}

// createShared creates name as an alias of the resource registered as
// source.
func createShared[D, T any](b *Builder, name string, desc D, factory func(D) (T, error), source string) (*Ref[T], error) {
	src, err := sourceDescriptor[D, T](b, source)
	if err != nil {
		return nil, err
	}
	d := NewDescriptor(desc, factory).ShareWith(src)
	return CreateResource(b, name, d)
}

// sourceDescriptor returns the current descriptor of a created resource.
func sourceDescriptor[D, T any](b *Builder, source string) (*Descriptor[D, T], error) {
	e, ok := b.reg.entries[source]
	if !ok || e.res == nil {
		return nil, &NotFoundError{Name: source, Reason: "share source"}
	}
	bd, ok := e.res.(*binding[D, T])
	if !ok {
		return nil, &TypeMismatchError{Name: source, Actual: e.kind, Requested: reflect.TypeFor[T]()}
	}
	return bd.desc, nil
}
