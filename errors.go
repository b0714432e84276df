package rendergraph

import (
	"errors"
	"fmt"
	"reflect"
)

// Registry and graph errors. The typed errors below match these sentinels
// with errors.Is.
var (
	// ErrDuplicateName is returned when a name is already bound to a
	// resource of a different kind.
	ErrDuplicateName = errors.New("rendergraph: duplicate resource name")

	// ErrResourceNotFound is returned when a required resource is absent.
	ErrResourceNotFound = errors.New("rendergraph: resource not found")

	// ErrTypeMismatch is returned when a resource is requested as the
	// wrong kind.
	ErrTypeMismatch = errors.New("rendergraph: resource type mismatch")

	// ErrResourceCreation is returned when a factory fails to build an object.
	ErrResourceCreation = errors.New("rendergraph: resource creation failed")

	// ErrIncompatibleShare is returned when an explicit alias describes an
	// object its share source cannot satisfy.
	ErrIncompatibleShare = errors.New("rendergraph: incompatible share source")

	// ErrNoFactory is returned when a descriptor has no factory function.
	ErrNoFactory = errors.New("rendergraph: descriptor has no factory")

	// ErrNotReady is returned when a graph is executed before a successful Setup.
	ErrNotReady = errors.New("rendergraph: graph not set up")

	// ErrGraphClosed is returned when a closed graph is used.
	ErrGraphClosed = errors.New("rendergraph: graph closed")

	// ErrPassAlreadyAdded is returned when a pass name is added twice.
	ErrPassAlreadyAdded = errors.New("rendergraph: pass already added")

	// ErrNilPass is returned when AddPass receives nil.
	ErrNilPass = errors.New("rendergraph: nil pass")
)

// DuplicateNameError reports a name already bound to another kind.
type DuplicateNameError struct {
	Name      string
	Existing  reflect.Type
	Requested reflect.Type
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("rendergraph: resource %q already registered as %v, requested %v",
		e.Name, e.Existing, e.Requested)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Name string
	// Reason says which operation required the resource.
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("rendergraph: resource %q not found", e.Name)
	}
	return fmt.Sprintf("rendergraph: resource %q not found (%s)", e.Name, e.Reason)
}

// Is reports whether target is ErrResourceNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrResourceNotFound }

// TypeMismatchError reports a lookup with the wrong kind.
type TypeMismatchError struct {
	Name      string
	Actual    reflect.Type
	Requested reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("rendergraph: resource %q is %v, not %v", e.Name, e.Actual, e.Requested)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// CreationError wraps a factory failure.
type CreationError struct {
	Name string
	Kind reflect.Type
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("rendergraph: create %v %q: %v", e.Kind, e.Name, e.Err)
}

// Is reports whether target is ErrResourceCreation.
func (e *CreationError) Is(target error) bool { return target == ErrResourceCreation }

// Unwrap returns the factory error.
func (e *CreationError) Unwrap() error { return e.Err }
