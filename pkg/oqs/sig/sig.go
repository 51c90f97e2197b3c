package sig

import (
	"fmt"
	"runtime"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

// Signature binds one native signature algorithm instance to a disposal-safe
// handle. Memory management and concurrency rules match kem.KEM: Close
// explicitly, finalizer as safety net, no internal locking.
type Signature struct {
	name string
	mech *backend.SigMechanism
}

// New creates a handle for the named signature algorithm, for example
// "ML-DSA-65".
func New(name string) (*Signature, error) {
	if err := backend.ValidateAlgorithmName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", oqs.ErrInvalidArgument, err)
	}
	p, err := backend.Active()
	if err != nil {
		return nil, err
	}
	mech, err := p.NewSig(name)
	if err != nil {
		return nil, oqs.RemapError("sig.New", name, err)
	}
	h := &Signature{name: name, mech: mech}
	runtime.SetFinalizer(h, func(h *Signature) {
		_ = h.Close()
	})
	return h, nil
}

// Close releases the native descriptor. Idempotent; the finalizer is detached
// only after the release has happened.
func (h *Signature) Close() error {
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
func (h *Signature) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// Details describes the fixed parameters of the wrapped algorithm.
type Details struct {
	Name             string
	ClaimedNISTLevel int
	IsEUFCMA         bool
	PublicKeyLength  int
	SecretKeyLength  int

	// MaxSignatureLength bounds signature size; many schemes produce
	// signatures shorter than the maximum.
	MaxSignatureLength int
}

// Details returns the algorithm parameters. Fails on a closed handle.
func (h *Signature) Details() (Details, error) {
	if h == nil || h.mech == nil {
		return Details{}, oqs.ErrHandleClosed
	}
	return Details{
		Name:               h.mech.Name,
		ClaimedNISTLevel:   h.mech.ClaimedNISTLevel,
		IsEUFCMA:           h.mech.EUFCMA,
		PublicKeyLength:    h.mech.PublicKeyLength,
		SecretKeyLength:    h.mech.SecretKeyLength,
		MaxSignatureLength: h.mech.MaxSignatureLength,
	}, nil
}

// GenerateKeyPair generates a fresh signing key pair. Call ClearSecrets on
// the result once the secret key is no longer needed.
func (h *Signature) GenerateKeyPair() (*KeyPair, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if h.mech.Keypair == nil {
		return nil, fmt.Errorf("%w: %s keypair", oqs.ErrCorruptDescriptor, h.name)
	}
	publicKey, secretKey, err := h.mech.Keypair()
	if err != nil {
		return nil, oqs.RemapError("sig.GenerateKeyPair", h.name, err)
	}
	return newKeyPair(publicKey, secretKey), nil
}

// Sign signs message with secretKey and returns the signature at its actual
// length, which may be below the scheme maximum.
//
// Empty messages are rejected by policy: signing a message that carries no
// content is almost always a caller bug, not an intent.
func (h *Signature) Sign(message, secretKey []byte) ([]byte, error) {
	if h == nil || h.mech == nil {
		return nil, oqs.ErrHandleClosed
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("%w: message is empty", oqs.ErrInvalidArgument)
	}
	if len(secretKey) != h.mech.SecretKeyLength {
		return nil, fmt.Errorf("%w: secret key must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.SecretKeyLength, len(secretKey))
	}
	if h.mech.Sign == nil {
		return nil, fmt.Errorf("%w: %s sign", oqs.ErrCorruptDescriptor, h.name)
	}
	signature, err := h.mech.Sign(message, secretKey)
	if err != nil {
		return nil, oqs.RemapError("sig.Sign", h.name, err)
	}
	return signature, nil
}

// Verify reports whether signature is a valid signature of message under
// publicKey. An invalid signature is a normal false result, never an error.
// Oversized or empty signatures fail validation before any native call.
func (h *Signature) Verify(message, signature, publicKey []byte) (bool, error) {
	if h == nil || h.mech == nil {
		return false, oqs.ErrHandleClosed
	}
	if len(publicKey) != h.mech.PublicKeyLength {
		return false, fmt.Errorf("%w: public key must be exactly %d bytes, got %d", oqs.ErrInvalidArgument, h.mech.PublicKeyLength, len(publicKey))
	}
	if len(signature) == 0 {
		return false, fmt.Errorf("%w: signature is empty", oqs.ErrInvalidArgument)
	}
	if len(signature) > h.mech.MaxSignatureLength {
		return false, fmt.Errorf("%w: signature of %d bytes exceeds maximum %d", oqs.ErrInvalidArgument, len(signature), h.mech.MaxSignatureLength)
	}
	if h.mech.Verify == nil {
		return false, fmt.Errorf("%w: %s verify", oqs.ErrCorruptDescriptor, h.name)
	}
	ok, err := h.mech.Verify(message, signature, publicKey)
	if err != nil {
		return false, oqs.RemapError("sig.Verify", h.name, err)
	}
	return ok, nil
}
