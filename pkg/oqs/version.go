package oqs

import "github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"

// Version is the wrapper's semantic version, populated at build time via
// ldflags. In development it defaults to v0.0.0-dev.
var Version = "v0.0.0-dev"

// WrapperVersion returns the version of this Go wrapper.
func WrapperVersion() string {
	return Version
}

// NativeVersion returns the version string reported by the linked liboqs
// library, or "" when no native provider is available.
func NativeVersion() string {
	p, err := backend.Active()
	if err != nil {
		return ""
	}
	return p.Version()
}
