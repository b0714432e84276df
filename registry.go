// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendergraph

import (
	"reflect"
	"slices"
	"sort"
)

// Registry maps resource names to typed handles and owns every object
// built through it.
//
// A name maps to at most one object type at a time. Realized objects are
// also grouped by type so all objects of one kind can be enumerated.
//
// Registry is NOT safe for concurrent use. All operations must happen on
// the rendering thread.
type Registry struct {
	entries map[string]*entry
	order   []string

	// groups is the per-type view of live physical objects, in creation order.
	groups map[reflect.Type][]*liveObject
	live   []*liveObject
	seq    uint64

	gen          uint64
	cycling      bool
	factoryCalls uint64
}

// entry is one named slot in the registry.
type entry struct {
	name   string
	kind   reflect.Type
	handle Handle
	res    resourceBinding // nil until a descriptor is created for the name
	gen    uint64          // last configuration cycle that declared or fetched the entry
	// managed is set once a configuration cycle declares the entry. Only
	// managed entries are pruned; names registered by the host between
	// cycles live until removed.
	managed bool
}

// resourceBinding is the kind-erased part of binding[D, T] the registry
// needs for untyped operations.
type resourceBinding interface {
	realize() error
	dispose()
	remove()
	descType() reflect.Type
	aliasOf() string
	lazy() bool
	liveSeq() uint64
}

// liveObject records one physical object for the per-type view.
type liveObject struct {
	kind  reflect.Type
	obj   any
	owner string
	seq   uint64
}

// RegistryStats reports registry occupancy.
type RegistryStats struct {
	// Entries is the number of registered names.
	Entries int
	// Realized is the number of names whose handle refers to an object.
	Realized int
	// Aliases is the number of names bound to another name's object.
	Aliases int
	// Pending is the number of created names not yet realized.
	Pending int
	// Objects is the number of live physical objects.
	Objects int
	// FactoryCalls counts successful and failed factory invocations.
	FactoryCalls uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		groups:  make(map[reflect.Type][]*liveObject),
	}
}

// Add registers an empty, uncreated entry for name. Adding a name that
// already holds the same type returns the existing handle.
func Add[T any](r *Registry, name string) (*Ref[T], error) {
	kind := reflect.TypeFor[T]()
	if e, ok := r.entries[name]; ok {
		if e.kind != kind {
			return nil, &DuplicateNameError{Name: name, Existing: e.kind, Requested: kind}
		}
		r.declare(e)
		return e.handle.(*Ref[T]), nil
	}
	ref := &Ref[T]{name: name, reg: r}
	e := &entry{name: name, kind: kind, handle: ref}
	r.declare(e)
	r.insert(e)
	return ref, nil
}

// GetOrAdd returns the handle for name, registering an empty entry when
// absent. A name holding another type is a TypeMismatchError.
func GetOrAdd[T any](r *Registry, name string) (*Ref[T], error) {
	ref, err := Get[T](r, name)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		r.declare(r.entries[name])
		return ref, nil
	}
	return Add[T](r, name)
}

// Get returns the handle for name, or nil, nil when absent.
// A name holding another type is a TypeMismatchError. A fetched entry
// counts as used by the current cycle and is not pruned at its end.
func Get[T any](r *Registry, name string) (*Ref[T], error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, nil
	}
	ref, ok := e.handle.(*Ref[T])
	if !ok {
		return nil, &TypeMismatchError{Name: name, Actual: e.kind, Requested: reflect.TypeFor[T]()}
	}
	e.gen = r.gen
	return ref, nil
}

// Objects returns the live objects of type T in creation order. Objects
// shared by several names appear once.
func Objects[T any](r *Registry) []T {
	group := r.groups[reflect.TypeFor[T]()]
	out := make([]T, 0, len(group))
	for _, l := range group {
		out = append(out, l.obj.(T))
	}
	return out
}

// Lookup returns the untyped handle for name.
func (r *Registry) Lookup(name string) (Handle, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.handle, true
}

// Get returns the untyped handle for name, or nil when absent.
func (r *Registry) Get(name string) Handle {
	h, _ := r.Lookup(name)
	return h
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// KindOf returns the object type registered under name, or nil.
func (r *Registry) KindOf(name string) reflect.Type {
	if e, ok := r.entries[name]; ok {
		return e.kind
	}
	return nil
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered names.
func (r *Registry) Len() int { return len(r.entries) }

// Remove detaches the entry for name. An owned object is released once no
// alias holds it; an alias only drops its reference. The handle is left
// detached and the name becomes free. Reports whether an entry existed.
func (r *Registry) Remove(name string) bool {
	e, ok := r.entries[name]
	if !ok {
		return false
	}
	if e.res != nil {
		e.res.remove()
	}
	r.erase(name)
	Logger().Debug("rendergraph: removed", "name", name, "kind", e.kind)
	return true
}

// Dispose releases the object behind name but keeps its descriptor, so
// the handle can be realized again. Reports whether a created entry existed.
func (r *Registry) Dispose(name string) bool {
	e, ok := r.entries[name]
	if !ok || e.res == nil {
		return false
	}
	created := e.handle.Created()
	e.res.dispose()
	return created
}

// AliasOf returns the name whose object name currently shares, or "" when
// name owns its object. The second result reports whether name exists.
func (r *Registry) AliasOf(name string) (string, bool) {
	e, ok := r.entries[name]
	if !ok {
		return "", false
	}
	if e.res == nil {
		return "", true
	}
	return e.res.aliasOf(), true
}

// Realize builds the object for a lazily declared or disposed entry.
// Realizing an entry that already refers to an object is a no-op.
func (r *Registry) Realize(name string) error {
	e, ok := r.entries[name]
	if !ok {
		return &NotFoundError{Name: name, Reason: "realize"}
	}
	if e.res == nil {
		return &NotFoundError{Name: name, Reason: "declared but never created"}
	}
	return e.res.realize()
}

// BeginCycle starts a configuration cycle. Entries declared in an earlier
// cycle and neither declared nor fetched again before the next Prune are
// considered stale.
func (r *Registry) BeginCycle() {
	r.gen++
	r.cycling = true
}

// EndCycle closes the configuration cycle. Names created until the next
// BeginCycle belong to the host and are never pruned.
func (r *Registry) EndCycle() {
	r.cycling = false
}

// Prune removes stale entries and returns their names.
func (r *Registry) Prune() []string {
	var stale []string
	for _, name := range r.order {
		if e := r.entries[name]; e.managed && e.gen < r.gen {
			stale = append(stale, name)
		}
	}
	for _, name := range stale {
		Logger().Warn("rendergraph: pruning stale resource", "name", name)
		r.Remove(name)
	}
	return stale
}

// Stats returns registry occupancy counters.
func (r *Registry) Stats() RegistryStats {
	st := RegistryStats{
		Entries:      len(r.entries),
		Objects:      len(r.live),
		FactoryCalls: r.factoryCalls,
	}
	for _, e := range r.entries {
		if e.handle.Created() {
			st.Realized++
		}
		if e.res == nil {
			continue
		}
		if e.res.aliasOf() != "" {
			st.Aliases++
		}
		if !e.handle.Created() {
			st.Pending++
		}
	}
	return st
}

// Close releases every object, most recently created first, and empties
// the registry. Handles obtained earlier are detached.
func (r *Registry) Close() {
	names := slices.Clone(r.order)
	sort.SliceStable(names, func(i, j int) bool {
		return r.seqOf(names[i]) > r.seqOf(names[j])
	})
	for _, name := range names {
		r.Remove(name)
	}
}

func (r *Registry) seqOf(name string) uint64 {
	e := r.entries[name]
	if e.res == nil {
		return 0
	}
	return e.res.liveSeq()
}

// declare marks e as declared by the current cycle.
func (r *Registry) declare(e *entry) {
	e.gen = r.gen
	if r.cycling {
		e.managed = true
	}
}

func (r *Registry) insert(e *entry) {
	r.entries[e.name] = e
	r.order = append(r.order, e.name)
}

func (r *Registry) erase(name string) {
	if d, ok := r.entries[name].handle.(interface{ detach() }); ok {
		d.detach()
	}
	delete(r.entries, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// track records a newly built physical object.
func (r *Registry) track(kind reflect.Type, obj any, owner string) *liveObject {
	r.seq++
	l := &liveObject{kind: kind, obj: obj, owner: owner, seq: r.seq}
	r.live = append(r.live, l)
	r.groups[kind] = append(r.groups[kind], l)
	return l
}

// untrack forgets a released physical object.
func (r *Registry) untrack(l *liveObject) {
	if i := slices.Index(r.live, l); i >= 0 {
		r.live = slices.Delete(r.live, i, i+1)
	}
	group := r.groups[l.kind]
	if i := slices.Index(group, l); i >= 0 {
		group = slices.Delete(group, i, i+1)
	}
	if len(group) == 0 {
		delete(r.groups, l.kind)
	} else {
		r.groups[l.kind] = group
	}
}
