// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendergraph

import (
	"fmt"
	"reflect"
	"slices"
)

// binding connects a registry entry to its current descriptor and to the
// share graph. A binding either owns its backing object or aliases the
// object of its root.
type binding[D, T any] struct {
	reg  *Registry
	e    *entry
	ref  *Ref[T]
	desc *Descriptor[D, T]

	root    *binding[D, T]   // non-nil while aliasing another binding
	aliases []*binding[D, T] // bindings aliasing this one
	removed bool
}

// Create establishes or updates the resource name from d.
//
// If name already holds an object built from an equal description, the
// existing handle is returned without invoking the factory. A different
// description rebuilds the object in place: the handle keeps its identity
// and the previous object is released once no alias holds it. A new name
// is registered and built immediately unless d has FlagLazy.
//
// A factory failure is returned as *CreationError and leaves the entry in
// its prior state; a new name is not registered.
func Create[D, T any](r *Registry, name string, d *Descriptor[D, T]) (*Ref[T], error) {
	kind := reflect.TypeFor[T]()
	if d == nil {
		return nil, &CreationError{Name: name, Kind: kind, Err: ErrNoFactory}
	}
	if d.Factory == nil && d.ShareSource == nil {
		return nil, &CreationError{Name: name, Kind: kind, Err: ErrNoFactory}
	}
	if cur := d.live(); cur != nil && cur.ref.name != name {
		return nil, &CreationError{Name: name, Kind: kind,
			Err: fmt.Errorf("descriptor already registered as %q", cur.ref.name)}
	}

	e, exists := r.entries[name]
	if !exists {
		return createEntry(r, name, d)
	}
	if e.kind != kind {
		return nil, &DuplicateNameError{Name: name, Existing: e.kind, Requested: kind}
	}
	r.declare(e)
	ref := e.handle.(*Ref[T])

	if e.res == nil {
		// Declared through Add or GetOrAdd; this is the first creation.
		b := &binding[D, T]{reg: r, e: e, ref: ref}
		if !d.Flags.Has(FlagLazy) {
			if err := b.build(d); err != nil {
				return nil, err
			}
		}
		b.commit(d)
		e.res = b
		return ref, nil
	}

	b, ok := e.res.(*binding[D, T])
	if !ok {
		return nil, &TypeMismatchError{Name: name, Actual: e.res.descType(), Requested: reflect.TypeFor[D]()}
	}

	if b.same(d) {
		b.commit(d)
		if !ref.Created() && !d.Flags.Has(FlagLazy) {
			if err := b.build(d); err != nil {
				return nil, err
			}
		}
		return ref, nil
	}

	if d.Flags.Has(FlagLazy) && !ref.Created() {
		b.commit(d)
		return ref, nil
	}
	if err := b.build(d); err != nil {
		return nil, err
	}
	b.commit(d)
	return ref, nil
}

// Update rebuilds the object for name from desc even when desc equals the
// current description. The entry keeps its factory, flags and share source.
func Update[D, T any](r *Registry, name string, desc D) (*Ref[T], error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Reason: "update"}
	}
	kind := reflect.TypeFor[T]()
	if e.kind != kind {
		return nil, &TypeMismatchError{Name: name, Actual: e.kind, Requested: kind}
	}
	if e.res == nil {
		return nil, &NotFoundError{Name: name, Reason: "update of a declared but never created resource"}
	}
	b, ok := e.res.(*binding[D, T])
	if !ok {
		return nil, &TypeMismatchError{Name: name, Actual: e.res.descType(), Requested: reflect.TypeFor[D]()}
	}
	r.declare(e)

	next := *b.desc
	next.Description = desc
	next.bound = nil
	if err := b.build(&next); err != nil {
		return nil, err
	}
	b.desc.Description = desc
	return b.ref, nil
}

func createEntry[D, T any](r *Registry, name string, d *Descriptor[D, T]) (*Ref[T], error) {
	ref := &Ref[T]{name: name, reg: r}
	e := &entry{name: name, kind: reflect.TypeFor[T](), handle: ref}
	b := &binding[D, T]{reg: r, e: e, ref: ref}
	if !d.Flags.Has(FlagLazy) {
		if err := b.build(d); err != nil {
			return nil, err
		}
	}
	b.commit(d)
	e.res = b
	r.declare(e)
	r.insert(e)
	return ref, nil
}

// same reports whether d describes exactly what the binding holds. An
// explicit alias detached from its source by an incompatible rebuild is
// never the same, so redeclaring it relinks or fails.
func (b *binding[D, T]) same(d *Descriptor[D, T]) bool {
	cur := b.desc
	if cur.Flags != d.Flags {
		return false
	}
	if !sameSource(cur.ShareSource, d.ShareSource) {
		return false
	}
	if d.ShareSource != nil && b.ref.Created() && b.root != d.ShareSource.live() {
		return false
	}
	return descEqual(cur.Description, d.Description)
}

// sameSource reports whether two share sources resolve to the same binding.
func sameSource[D, T any](a, b *Descriptor[D, T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || (a.live() != nil && a.live() == b.live())
}

// commit makes d the binding's current descriptor. Earlier descriptors
// stay bound, so aliases naming them as ShareSource still resolve.
func (b *binding[D, T]) commit(d *Descriptor[D, T]) {
	b.desc = d
	d.bound = b
}

// build realizes the binding from d: alias an explicit share source, alias
// a compatible shareable object, or invoke the factory. On error nothing
// changes.
func (b *binding[D, T]) build(d *Descriptor[D, T]) error {
	kind := reflect.TypeFor[T]()

	if d.ShareSource != nil {
		src := d.ShareSource.live()
		if src == nil || src.reg != b.reg {
			return &CreationError{Name: b.ref.name, Kind: kind,
				Err: &NotFoundError{Name: d.ShareSource.Name(), Reason: "share source not registered"}}
		}
		if src.reaches(b) {
			return &CreationError{Name: b.ref.name, Kind: kind,
				Err: fmt.Errorf("%w: share cycle through %q", ErrIncompatibleShare, src.ref.name)}
		}
		if !descCompatible(d.Description, src.desc.Description) {
			return &CreationError{Name: b.ref.name, Kind: kind,
				Err: fmt.Errorf("%w: %q cannot serve %q", ErrIncompatibleShare, src.ref.name, b.ref.name)}
		}
		if err := src.realize(); err != nil {
			return err
		}
		b.attach(src)
		return nil
	}

	if d.Flags.Has(FlagShareable) {
		if src := b.findShareable(d.Description); src != nil {
			b.attach(src)
			return nil
		}
	}

	if d.Factory == nil {
		return &CreationError{Name: b.ref.name, Kind: kind, Err: ErrNoFactory}
	}
	b.reg.factoryCalls++
	obj, err := d.Factory(d.Description)
	if err != nil {
		return &CreationError{Name: b.ref.name, Kind: kind, Err: err}
	}
	nb := &backing[T]{
		obj:     obj,
		release: d.releaseFunc(),
		live:    b.reg.track(kind, obj, b.ref.name),
	}
	b.unlink()
	b.bindTree(nb, d.Description)
	Logger().Debug("rendergraph: built", "name", b.ref.name, "kind", kind, "aliases", len(b.aliases))
	return nil
}

// findShareable returns a created shareable root of the same kind whose
// description is compatible with desc.
func (b *binding[D, T]) findShareable(desc D) *binding[D, T] {
	for _, name := range b.reg.order {
		e := b.reg.entries[name]
		cand, ok := e.res.(*binding[D, T])
		if !ok || cand == b || cand.root != nil || !cand.ref.Created() {
			continue
		}
		if !cand.desc.Flags.Has(FlagShareable) || cand.reaches(b) {
			continue
		}
		if descCompatible(desc, cand.desc.Description) {
			return cand
		}
	}
	return nil
}

// reaches reports whether target is b or one of b's share ancestors.
func (b *binding[D, T]) reaches(target *binding[D, T]) bool {
	for cur := b; cur != nil; cur = cur.root {
		if cur == target {
			return true
		}
	}
	return false
}

// attach makes b an alias of src and binds it to src's object.
func (b *binding[D, T]) attach(src *binding[D, T]) {
	if b.root != src {
		b.unlink()
		b.root = src
		src.aliases = append(src.aliases, b)
	}
	b.bindTree(src.ref.b, src.owner().desc.Description)
	Logger().Debug("rendergraph: alias", "name", b.ref.name, "source", src.ref.name)
}

// unlink detaches b from its root without touching its object.
func (b *binding[D, T]) unlink() {
	if b.root == nil {
		return
	}
	src := b.root
	if i := slices.Index(src.aliases, b); i >= 0 {
		src.aliases = slices.Delete(src.aliases, i, i+1)
	}
	b.root = nil
}

// set points the handle at nb, releasing the previous object when b was
// its last holder.
func (b *binding[D, T]) set(nb *backing[T]) {
	old := b.ref.b
	if old == nb {
		return
	}
	if nb != nil {
		nb.acquire()
	}
	b.ref.b = nb
	if old != nil {
		old.drop(b.reg)
	}
}

// bindTree sets nb, built from desc, on b and on every alias below it
// that desc can still serve. An alias that no longer fits leaves the share
// graph and keeps its current object, which matches its own description.
func (b *binding[D, T]) bindTree(nb *backing[T], desc D) {
	b.set(nb)
	for _, a := range slices.Clone(b.aliases) {
		if !descCompatible(a.desc.Description, desc) {
			a.unlink()
			Logger().Debug("rendergraph: alias detached", "name", a.ref.name, "source", b.ref.name)
			continue
		}
		a.bindTree(nb, desc)
	}
}

// owner returns the binding at the top of b's share chain.
func (b *binding[D, T]) owner() *binding[D, T] {
	for b.root != nil {
		b = b.root
	}
	return b
}

func (b *binding[D, T]) realize() error {
	if b.ref.Created() {
		return nil
	}
	return b.build(b.desc)
}

// dispose drops the binding's reference. An alias also leaves its root.
// Aliases of b keep the object alive and stay linked, so a later rebuild
// of b rebinds them.
func (b *binding[D, T]) dispose() {
	b.set(nil)
	b.unlink()
}

// remove drops the reference and leaves the share graph. Aliases of b keep
// holding the current object.
func (b *binding[D, T]) remove() {
	b.set(nil)
	b.unlink()
	for _, a := range b.aliases {
		a.root = nil
	}
	b.aliases = nil
	b.removed = true
}

func (b *binding[D, T]) descType() reflect.Type { return reflect.TypeFor[D]() }

func (b *binding[D, T]) aliasOf() string {
	if b.root == nil {
		return ""
	}
	return b.root.ref.name
}

func (b *binding[D, T]) lazy() bool { return b.desc.Flags.Has(FlagLazy) }

func (b *binding[D, T]) liveSeq() uint64 {
	if b.ref.b == nil {
		return 0
	}
	return b.ref.b.live.seq
}
