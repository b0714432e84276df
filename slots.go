package rendergraph

import (
	"maps"
	"slices"
)

// Slots is a named side channel through which passes publish handles to
// each other outside the registry, such as the shadow map produced by a
// shadow pass for a later lighting pass.
//
// Slots is owned by a Graph and reset when the graph closes. It is NOT
// safe for concurrent use.
type Slots struct {
	m map[string]Handle
}

// NewSlots creates an empty slot service.
func NewSlots() *Slots {
	return &Slots{m: make(map[string]Handle)}
}

// Set publishes h under key, replacing any previous value.
func (s *Slots) Set(key string, h Handle) {
	s.m[key] = h
}

// Get returns the handle published under key.
func (s *Slots) Get(key string) (Handle, bool) {
	h, ok := s.m[key]
	return h, ok
}

// Clear removes key.
func (s *Slots) Clear(key string) {
	delete(s.m, key)
}

// ClearIf removes key only if it still holds h, so a pass can retract its
// own publication without clobbering a newer one.
func (s *Slots) ClearIf(key string, h Handle) bool {
	if cur, ok := s.m[key]; ok && cur == h {
		delete(s.m, key)
		return true
	}
	return false
}

// Keys returns the published keys in sorted order.
func (s *Slots) Keys() []string {
	return slices.Sorted(maps.Keys(s.m))
}

// Len returns the number of published keys.
func (s *Slots) Len() int { return len(s.m) }

// Reset removes every key.
func (s *Slots) Reset() {
	clear(s.m)
}

// Publish sets ref under key.
func Publish[T any](s *Slots, key string, ref *Ref[T]) {
	s.Set(key, ref)
}

// Lookup returns the typed handle published under key. The second result
// is false when the key is absent or holds another type.
func Lookup[T any](s *Slots, key string) (*Ref[T], bool) {
	h, ok := s.m[key]
	if !ok {
		return nil, false
	}
	ref, ok := h.(*Ref[T])
	return ref, ok
}
