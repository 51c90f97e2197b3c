package oqs

import (
	"errors"
	"fmt"

	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

var (
	// ErrNotBuilt indicates the native liboqs bindings were not linked into
	// the current binary.
	ErrNotBuilt = backend.ErrNotBuilt

	// ErrInvalidArgument indicates the caller supplied input of an invalid
	// shape: an empty buffer, a wrong length, a bad range, or an algorithm
	// name outside the permitted character set.
	ErrInvalidArgument = errors.New("oqs: invalid argument")

	// ErrHandleClosed indicates an operation was attempted on a handle
	// after Close.
	ErrHandleClosed = errors.New("oqs: handle is closed")

	// ErrAlgorithmUnavailable indicates the algorithm is unknown or was
	// disabled when the native library was built.
	ErrAlgorithmUnavailable = errors.New("oqs: algorithm not available")

	// ErrNotSupported indicates the algorithm does not provide the
	// requested optional capability, such as derandomized key generation.
	ErrNotSupported = errors.New("oqs: operation not supported by this algorithm")

	// ErrCorruptDescriptor indicates the native capability table is missing
	// an entry point the operation requires. A healthy build never hits it.
	ErrCorruptDescriptor = errors.New("oqs: native descriptor is missing a required entry point")

	// ErrEntropyExhausted indicates the rejection-sampling loop exceeded
	// its retry budget, which is evidence of a degenerate random source.
	ErrEntropyExhausted = errors.New("oqs: random source exhausted its retry budget")
)

// LibraryError wraps a failed native operation with enough context to
// diagnose it: the operation, the algorithm where relevant, and the native
// status code when one was returned.
type LibraryError struct {
	Op        string
	Algorithm string
	Code      int
	Err       error
}

func (e *LibraryError) Error() string {
	msg := fmt.Sprintf("oqs.%s", e.Op)
	if e.Algorithm != "" {
		msg += fmt.Sprintf(" (%s)", e.Algorithm)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Code)
	}
	return msg
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// RemapError converts backend layer errors into public API errors. It is
// exported for use by the kem and sig subpackages.
func RemapError(op, algorithm string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, backend.ErrNotBuilt) {
		return err
	}
	le := &LibraryError{Op: op, Algorithm: algorithm, Err: err}
	var status backend.StatusError
	if errors.As(err, &status) {
		le.Code = int(status)
	}
	if errors.Is(err, backend.ErrAlgorithmUnavailable) {
		le.Err = fmt.Errorf("%w: %s", ErrAlgorithmUnavailable, algorithm)
	}
	return le
}
