package backend

import (
	"errors"
	"fmt"
)

// ErrNotBuilt reports that no native provider was linked into the current
// binary and no substitute has been installed.
var ErrNotBuilt = errors.New("oqs/internal/backend: native liboqs bindings not built")

// ErrAlgorithmUnavailable reports that the provider does not know the
// requested algorithm, or that it was disabled when the native library was
// compiled.
var ErrAlgorithmUnavailable = errors.New("oqs/internal/backend: algorithm not available")

// StatusError carries a non-zero status code returned by a native call.
// The zero status is success and is never wrapped in a StatusError.
type StatusError int

func (e StatusError) Error() string {
	return fmt.Sprintf("native call returned status %d", int(e))
}

// KEMMechanism is the per-algorithm capability table for a key encapsulation
// mechanism. The lengths are fixed for the lifetime of the mechanism. The
// operation fields mirror the native function table: a nil field means the
// corresponding native entry point is absent, and callers must check before
// invoking.
type KEMMechanism struct {
	Name               string
	ClaimedNISTLevel   int
	INDCCA             bool
	PublicKeyLength    int
	SecretKeyLength    int
	CiphertextLength   int
	SharedSecretLength int

	// SeedLength is the exact seed size for derandomized key generation.
	// Zero means the algorithm offers no deterministic key generation.
	SeedLength int

	Keypair         func() (publicKey, secretKey []byte, err error)
	KeypairFromSeed func(seed []byte) (publicKey, secretKey []byte, err error)
	Encapsulate     func(publicKey []byte) (ciphertext, sharedSecret []byte, err error)
	Decapsulate     func(ciphertext, secretKey []byte) (sharedSecret []byte, err error)

	// Free releases the native descriptor. It must be safe to call exactly
	// once; the handle layer guarantees it is not called twice.
	Free func()
}

// SigMechanism is the per-algorithm capability table for a signature scheme.
type SigMechanism struct {
	Name               string
	ClaimedNISTLevel   int
	EUFCMA             bool
	PublicKeyLength    int
	SecretKeyLength    int
	MaxSignatureLength int

	Keypair func() (publicKey, secretKey []byte, err error)
	// Sign returns the signature at its actual length, which may be shorter
	// than MaxSignatureLength for variable-length schemes.
	Sign   func(message, secretKey []byte) ([]byte, error)
	Verify func(message, signature, publicKey []byte) (bool, error)

	Free func()
}

// Provider is the capability source behind the wrapper: the native liboqs
// library when cgo is available, or a pure-Go substitute in tests.
type Provider interface {
	// Name identifies the provider for diagnostics.
	Name() string

	// Version returns the library version string, or "" when the provider
	// is not functional.
	Version() string

	// Init performs one-time global setup. It is safe to call repeatedly.
	Init() error

	// ThreadStop releases per-thread native state. Callers invoke it from
	// each worker context before that context exits.
	ThreadStop()

	// Destroy tears down global native state. It must not fail.
	Destroy()

	KEMs() []string
	IsKEMEnabled(name string) bool
	NewKEM(name string) (*KEMMechanism, error)

	Sigs() []string
	IsSigEnabled(name string) bool
	NewSig(name string) (*SigMechanism, error)

	// RandomBytes fills buf from the library's cryptographically secure
	// random source.
	RandomBytes(buf []byte) error
}
