package resource

import (
	"errors"
	"fmt"
)

// Resource construction errors.
var (
	// ErrNilDevice is returned when a factory has no HAL device.
	ErrNilDevice = errors.New("resource: nil device")

	// ErrNilQueue is returned when an upload is requested without a queue.
	ErrNilQueue = errors.New("resource: nil queue")

	// ErrNoProvider is returned when a device provider does not expose HAL types.
	ErrNoProvider = errors.New("resource: provider does not expose HAL device")

	// ErrInvalidDescription is returned when a description cannot describe
	// a valid GPU object (zero size, undefined format, empty shader).
	ErrInvalidDescription = errors.New("resource: invalid description")

	// ErrDestroyed is returned when operating on a destroyed object.
	ErrDestroyed = errors.New("resource: object destroyed")
)

// invalidf returns an error wrapping ErrInvalidDescription.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDescription, fmt.Sprintf(format, args...))
}
