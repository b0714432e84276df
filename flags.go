package rendergraph

import "strings"

// CreationFlags modify how a descriptor is realized.
type CreationFlags uint8

const (
	// FlagLazy defers construction until the handle is resolved.
	FlagLazy CreationFlags = 1 << iota

	// FlagShareable lets the registry bind this descriptor to an existing
	// shareable object of the same kind with a compatible description.
	FlagShareable
)

// Has reports whether all bits of flag are set.
func (f CreationFlags) Has(flag CreationFlags) bool { return f&flag == flag }

// String returns the flag names joined by "|".
func (f CreationFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(FlagLazy) {
		parts = append(parts, "lazy")
	}
	if f.Has(FlagShareable) {
		parts = append(parts, "shareable")
	}
	return strings.Join(parts, "|")
}

func joinFlags(flags []CreationFlags) CreationFlags {
	var out CreationFlags
	for _, f := range flags {
		out |= f
	}
	return out
}
