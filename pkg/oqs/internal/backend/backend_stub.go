//go:build !cgo || windows

package backend

// Stub build: no native provider is registered, so Active returns ErrNotBuilt
// until a substitute provider (for example the circl-backed test provider) is
// installed with SetProvider.

// NativeAvailable reports whether the liboqs bindings were compiled in.
func NativeAvailable() bool { return false }
