package rendergraph

import "reflect"

// Descriptor is a recipe for one named resource: the description of the
// desired object, the function that builds it, and how it may be shared.
//
// Only the Registry invokes Factory and Release. A descriptor with a
// ShareSource never owns a backing object; it aliases the object owned by
// the root of its share chain.
type Descriptor[D, T any] struct {
	// Description is the plain value describing the object.
	Description D

	// Factory builds an object from a description.
	Factory func(D) (T, error)

	// Release destroys an object. When nil and T has a Destroy method,
	// Destroy is used.
	Release func(T)

	// Flags modify realization.
	Flags CreationFlags

	// ShareSource, when set, makes this descriptor an alias of the object
	// built for ShareSource.
	ShareSource *Descriptor[D, T]

	bound *binding[D, T]
}

// NewDescriptor returns a descriptor for desc built by factory.
func NewDescriptor[D, T any](desc D, factory func(D) (T, error), flags ...CreationFlags) *Descriptor[D, T] {
	return &Descriptor[D, T]{
		Description: desc,
		Factory:     factory,
		Flags:       joinFlags(flags),
	}
}

// ShareWith sets src as the share source and returns d.
func (d *Descriptor[D, T]) ShareWith(src *Descriptor[D, T]) *Descriptor[D, T] {
	d.ShareSource = src
	return d
}

// Created reports whether the descriptor is registered and its handle
// currently refers to an object.
func (d *Descriptor[D, T]) Created() bool {
	b := d.live()
	return b != nil && b.ref.Created()
}

// Shared reports whether the descriptor aliases another descriptor.
func (d *Descriptor[D, T]) Shared() bool {
	return d.ShareSource != nil
}

// Name returns the name the descriptor is registered under, or "".
func (d *Descriptor[D, T]) Name() string {
	b := d.live()
	if b == nil {
		return ""
	}
	return b.ref.name
}

// live returns the registered binding, or nil once its entry is removed.
func (d *Descriptor[D, T]) live() *binding[D, T] {
	if d.bound == nil || d.bound.removed {
		return nil
	}
	return d.bound
}

// destroyer is implemented by resource objects with an explicit release.
type destroyer interface {
	Destroy()
}

// releaseFunc returns the release function for d.
func (d *Descriptor[D, T]) releaseFunc() func(T) {
	if d.Release != nil {
		return d.Release
	}
	return func(obj T) {
		if x, ok := any(obj).(destroyer); ok {
			x.Destroy()
		}
	}
}

// descEqual reports whether two descriptions are equal. Descriptions may
// implement Equal(D) bool; otherwise reflect.DeepEqual is used.
func descEqual[D any](a, b D) bool {
	if e, ok := any(a).(interface{ Equal(D) bool }); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// descCompatible reports whether an object built for b can serve a.
// Descriptions may implement Compatible(D) bool; otherwise equality is used.
func descCompatible[D any](a, b D) bool {
	if c, ok := any(a).(interface{ Compatible(D) bool }); ok {
		return c.Compatible(b)
	}
	return descEqual(a, b)
}
