package backend

import (
	"fmt"
	"sync"
)

var (
	providerMu sync.RWMutex
	provider   Provider
)

// SetProvider installs p as the active capability source and returns a
// function restoring the previous one. The native provider registers itself
// from an init function in the cgo build; tests install a pure-Go provider
// on top and restore on cleanup.
func SetProvider(p Provider) (restore func()) {
	providerMu.Lock()
	prev := provider
	provider = p
	providerMu.Unlock()
	return func() {
		providerMu.Lock()
		provider = prev
		providerMu.Unlock()
	}
}

// Active returns the installed provider, or ErrNotBuilt when the binary
// carries no native bindings and no substitute was installed.
func Active() (Provider, error) {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()
	if p == nil {
		return nil, ErrNotBuilt
	}
	return p, nil
}

// MaxAlgorithmNameLength bounds algorithm name strings before they are
// marshalled toward native code.
const MaxAlgorithmNameLength = 256

// ValidateAlgorithmName rejects names that must never reach the native
// string-marshalling path: empty, overlong, or containing characters outside
// the alphanumeric/hyphen/plus/underscore set used by liboqs identifiers.
func ValidateAlgorithmName(name string) error {
	if name == "" {
		return fmt.Errorf("algorithm name is empty")
	}
	if len(name) > MaxAlgorithmNameLength {
		return fmt.Errorf("algorithm name exceeds %d characters", MaxAlgorithmNameLength)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '+' || c == '_':
		default:
			return fmt.Errorf("algorithm name contains invalid character %q", c)
		}
	}
	return nil
}
