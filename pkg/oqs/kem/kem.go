package kem

import (
	"fmt"
	"runtime"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

// KEM binds one native KEM algorithm instance to a disposal-safe handle.
//
// Memory management: call Close() when the handle is no longer needed,
// preferably with defer. A finalizer releases the native descriptor if the
// handle is abandoned, but explicit Close keeps native memory bounded.
//
// A handle has no internal locking; use one handle per goroutine or
// synchronize externally. Two handles for the same algorithm are fully
// independent.
type KEM struct {
	name string
	mech *backend.KEMMechanism
}

// New creates a handle for the named KEM algorithm, for example "ML-KEM-768".
// The name is validated before it is allowed anywhere near native string
// marshalling.
func New(name string) (*KEM, error) {
	if err := backend.ValidateAlgorithmName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", oqs.ErrInvalidArgument, err)
	}
	p, err := backend.Active()
	if err != nil {
		return nil, err
	}
	mech, err := p.NewKEM(name)
	if err != nil {
		return nil, oqs.RemapError("kem.New", name, err)
	}
	h := &KEM{name: name, mech: mech}
	runtime.SetFinalizer(h, func(h *KEM) {
		_ = h.Close()
	})
	return h, nil
}

// Close releases the native descriptor. It is idempotent: only the first call
// releases, later calls return nil. The finalizer is detached only after the
// release has happened, so an abandoned release attempt stays retryable.
func (h *KEM) Close() error {
	if h == nil || h.mech == nil {
		return nil
	}
	if h.mech.Free != nil {
		h.mech.Free()
	}
	runtime.SetFinalizer(h, nil)
	h.mech = nil
	return nil
}

// Name returns the algorithm name the handle was created with. It remains
// valid after Close.
func (h *KEM) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// Details describes the fixed parameters of the wrapped algorithm.
type Details struct {
	Name               string
	ClaimedNISTLevel   int
	IsINDCCA           bool
	PublicKeyLength    int
	SecretKeyLength    int
	CiphertextLength   int
	SharedSecretLength int

	// SeedLength is the exact seed size for derandomized key generation,
	// or zero when the algorithm does not support it.
	SeedLength int
}

// Details returns the algorithm parameters. Fails on a closed handle.
func (h *KEM) Details() (Details, error) {
	if h == nil || h.mech == nil {
		return Details{}, oqs.ErrHandleClosed
	}
	return Details{
		Name:               h.mech.Name,
		ClaimedNISTLevel:   h.mech.ClaimedNISTLevel,
		IsINDCCA:           h.mech.INDCCA,
		PublicKeyLength:    h.mech.PublicKeyLength,
		SecretKeyLength:    h.mech.SecretKeyLength,
		CiphertextLength:   h.mech.CiphertextLength,
		SharedSecretLength: h.mech.SharedSecretLength,
		SeedLength:         h.mech.SeedLength,
	}, nil
}

// SupportsDerandomizedKeyPair reports whether the algorithm offers
// deterministic key generation from a seed. Fails on a closed handle.
func (h *KEM) SupportsDerandomizedKeyPair() (bool, error) {
	if h == nil || h.mech == nil {
		return false, oqs.ErrHandleClosed
	}
	return h.mech.KeypairFromSeed != nil && h.mech.SeedLength > 0, nil
}

// GenerateKeyPair generates a fresh key pair. The caller owns the result and
// should call ClearSecrets on it once the secret key is no longer needed.
func (h *KEM) GenerateKeyPair() (*KeyPair, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if h.mech.Keypair == nil {
		return nil, fmt.Errorf("%w: %s keypair", oqs.ErrCorruptDescriptor, h.name)
	}
	publicKey, secretKey, err := h.mech.Keypair()
	if err != nil {
		return nil, oqs.RemapError("kem.GenerateKeyPair", h.name, err)
	}
	return newKeyPair(publicKey, secretKey), nil
}

// GenerateKeyPairFromSeed deterministically derives a key pair from seed.
// The same seed always yields the same key pair. The seed is secret-equivalent
// input: its native copy is erased after use, and callers should zeroize
// their own copy.
//
// Algorithms without the capability fail with ErrNotSupported; query
// SupportsDerandomizedKeyPair first.
func (h *KEM) GenerateKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if h.mech.KeypairFromSeed == nil || h.mech.SeedLength <= 0 {
		return nil, fmt.Errorf("%w: %s does not support derandomized key generation", oqs.ErrNotSupported, h.name)
	}
	if len(seed) != h.mech.SeedLength {
		return nil, fmt.Errorf("%w: seed must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.SeedLength, len(seed))
	}
	publicKey, secretKey, err := h.mech.KeypairFromSeed(seed)
	if err != nil {
		return nil, oqs.RemapError("kem.GenerateKeyPairFromSeed", h.name, err)
	}
	return newKeyPair(publicKey, secretKey), nil
}

// Encapsulate produces a ciphertext and shared secret for publicKey. The
// shared secret in the result is secret material; clear it when done.
func (h *KEM) Encapsulate(publicKey []byte) (*EncapsulationResult, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if len(publicKey) != h.mech.PublicKeyLength {
		return nil, fmt.Errorf("%w: public key must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.PublicKeyLength, len(publicKey))
	}
	if h.mech.Encapsulate == nil {
		return nil, fmt.Errorf("%w: %s encapsulate", oqs.ErrCorruptDescriptor, h.name)
	}
	ciphertext, sharedSecret, err := h.mech.Encapsulate(publicKey)
	if err != nil {
		return nil, oqs.RemapError("kem.Encapsulate", h.name, err)
	}
	return newEncapsulationResult(ciphertext, sharedSecret), nil
}

// Decapsulate recovers the shared secret from ciphertext using secretKey.
//
// Decapsulating with a mismatched secret key is not an error: an IND-CCA KEM
// deterministically yields a shared secret that simply will not match the
// sender's, and this wrapper makes no attempt to detect it.
func (h *KEM) Decapsulate(ciphertext, secretKey []byte) ([]byte, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if len(ciphertext) != h.mech.CiphertextLength {
		return nil, fmt.Errorf("%w: ciphertext must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.CiphertextLength, len(ciphertext))
	}
	if len(secretKey) != h.mech.SecretKeyLength {
		return nil, fmt.Errorf("%w: secret key must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.SecretKeyLength, len(secretKey))
	}
	if h.mech.Decapsulate == nil {
		return nil, fmt.Errorf("%w: %s decapsulate", oqs.ErrCorruptDescriptor, h.name)
	}
	sharedSecret, err := h.mech.Decapsulate(ciphertext, secretKey)
	if err != nil {
		return nil, oqs.RemapError("kem.Decapsulate", h.name, err)
	}
	return sharedSecret, nil
}
