package rendergraph

import "reflect"

// Handle is the kind-erased view of a registered resource.
type Handle interface {
	// Name returns the registered name.
	Name() string

	// Kind returns the object type.
	Kind() reflect.Type

	// Created reports whether the handle refers to an object.
	Created() bool

	// Object returns the object as any, or nil before creation.
	Object() any
}

// Ref is a stable typed reference to a named resource.
//
// A Ref keeps its identity for as long as its registry entry exists.
// Rebuilding the object after a resize or description change swaps the
// target in place, so passes may hold a Ref across reconfiguration and
// read the current object with Value.
type Ref[T any] struct {
	name string
	reg  *Registry
	b    *backing[T]
}

// Name returns the registered name.
func (r *Ref[T]) Name() string { return r.name }

// Kind returns the object type.
func (r *Ref[T]) Kind() reflect.Type { return reflect.TypeFor[T]() }

// Created reports whether the handle refers to an object.
func (r *Ref[T]) Created() bool { return r != nil && r.b != nil }

// Value returns the current object, or the zero value before creation.
func (r *Ref[T]) Value() T {
	if r == nil || r.b == nil {
		var zero T
		return zero
	}
	return r.b.obj
}

// Object returns the current object as any, or nil before creation.
func (r *Ref[T]) Object() any {
	if !r.Created() {
		return nil
	}
	return r.b.obj
}

// Resolve returns the current object, building it first when it was
// declared lazily or disposed.
func (r *Ref[T]) Resolve() (T, error) {
	if r.Created() {
		return r.b.obj, nil
	}
	var zero T
	if r.reg == nil {
		return zero, &NotFoundError{Name: r.name, Reason: "entry removed"}
	}
	if err := r.reg.Realize(r.name); err != nil {
		return zero, err
	}
	return r.Value(), nil
}

// Detached reports whether the entry behind the handle was removed.
func (r *Ref[T]) Detached() bool { return r.reg == nil }

func (r *Ref[T]) detach() {
	r.reg = nil
	r.b = nil
}

// backing is one physical object shared by every handle bound to it.
// The object is released when the last holder drops it.
type backing[T any] struct {
	obj     T
	refs    int
	release func(T)
	live    *liveObject
}

func (b *backing[T]) acquire() { b.refs++ }

// drop removes one holder and releases the object when none remain.
func (b *backing[T]) drop(r *Registry) {
	b.refs--
	if b.refs > 0 {
		return
	}
	r.untrack(b.live)
	Logger().Debug("rendergraph: release", "kind", b.live.kind, "owner", b.live.owner)
	if b.release != nil {
		b.release(b.obj)
	}
}
