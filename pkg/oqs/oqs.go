package oqs

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

var (
	stateMu     sync.Mutex
	initialized atomic.Bool
)

// NativeAvailable reports whether the native liboqs bindings were compiled
// into this binary.
func NativeAvailable() bool {
	return backend.NativeAvailable()
}

// Init performs one-time global setup of the native library. It is
// idempotent and safe to race from multiple goroutines. Init verifies the
// library is minimally functional by requiring a non-empty version string, so
// an initialized state always implies a usable library.
//
// Worker contexts (OS threads driving native calls) must additionally call
// ThreadStop before they exit; see the ThreadStop documentation.
func Init() error {
	stateMu.Lock()
	defer stateMu.Unlock()

	if initialized.Load() {
		return nil
	}
	p, err := backend.Active()
	if err != nil {
		return err
	}
	if err := p.Init(); err != nil {
		return RemapError("Init", "", err)
	}
	if p.Version() == "" {
		return &LibraryError{Op: "Init", Err: errors.New("native library reported an empty version string")}
	}
	initialized.Store(true)
	return nil
}

// Initialized reports whether Init has completed successfully and Cleanup has
// not run since.
func Initialized() bool {
	return initialized.Load()
}

// Cleanup releases thread-local state for the calling context, tears down the
// library's global state, and clears the initialized flag. It never fails and
// is safe to call redundantly, including before Init.
//
// Callers must not invoke Cleanup while other worker contexts are still using
// the library; coordinating that shutdown order is a caller obligation.
func Cleanup() {
	stateMu.Lock()
	defer stateMu.Unlock()

	if p, err := backend.Active(); err == nil {
		p.ThreadStop()
		p.Destroy()
	}
	initialized.Store(false)
}

// ThreadStop releases per-thread native state. Each worker context that made
// native calls should invoke it before the context exits; the library cannot
// observe context lifecycles on its own.
func ThreadStop() {
	if p, err := backend.Active(); err == nil {
		p.ThreadStop()
	}
}

// SupportedKEMs returns the names of the KEM algorithms enabled in the
// linked native library.
func SupportedKEMs() ([]string, error) {
	p, err := backend.Active()
	if err != nil {
		return nil, err
	}
	return p.KEMs(), nil
}

// SupportedSignatures returns the names of the signature algorithms enabled
// in the linked native library.
func SupportedSignatures() ([]string, error) {
	p, err := backend.Active()
	if err != nil {
		return nil, err
	}
	return p.Sigs(), nil
}

// IsKEMSupported reports whether the named KEM algorithm is enabled. Names
// that fail validation are unsupported by definition and never reach native
// code.
func IsKEMSupported(name string) bool {
	if backend.ValidateAlgorithmName(name) != nil {
		return false
	}
	p, err := backend.Active()
	if err != nil {
		return false
	}
	return p.IsKEMEnabled(name)
}

// IsSignatureSupported reports whether the named signature algorithm is
// enabled.
func IsSignatureSupported(name string) bool {
	if backend.ValidateAlgorithmName(name) != nil {
		return false
	}
	p, err := backend.Active()
	if err != nil {
		return false
	}
	return p.IsSigEnabled(name)
}
