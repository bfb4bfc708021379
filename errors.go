package vg

import (
	"errors"
	"fmt"
)

// Error kinds shared by the core and all backend adapters.
// Geometry and state-machine errors indicate caller misuse and fail fast;
// backend errors are recoverable and surface through Status and Finish.
var (
	// ErrInvalidInput indicates malformed input such as unsorted gradient
	// stops, an out-of-range stop offset, a malformed path, or a resource
	// handle used against a context that did not create it.
	ErrInvalidInput = errors.New("vg: invalid input")

	// ErrSingularMatrix indicates inversion of a non-invertible affine
	// transform (determinant within epsilon of zero).
	ErrSingularMatrix = errors.New("vg: singular matrix")

	// ErrUnbalancedState indicates Restore without a matching Save, an
	// operation issued after Finish, or unbalanced Save calls at teardown.
	ErrUnbalancedState = errors.New("vg: unbalanced state")

	// ErrBackend wraps an opaque backend failure, such as an allocation or
	// write error. Buffering backends report it through Status or Finish.
	ErrBackend = errors.New("vg: backend error")
)

// invalidInputf wraps ErrInvalidInput with a formatted detail message.
func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// BackendError wraps an opaque backend failure so that callers can match it
// with errors.Is(err, ErrBackend) while preserving the underlying cause.
func BackendError(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBackend, cause)
}
