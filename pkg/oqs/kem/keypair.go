package kem

import (
	"encoding/base64"
	"encoding/hex"
	"runtime"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
)

// KeyPair holds a KEM key pair. PublicKey is safe to share; SecretKey is
// secret material. A finalizer zeroizes SecretKey if the holder never calls
// ClearSecrets, but that is defense in depth, not a substitute: GC timing is
// unspecified.
type KeyPair struct {
	PublicKey []byte
	SecretKey []byte
}

func newKeyPair(publicKey, secretKey []byte) *KeyPair {
	kp := &KeyPair{PublicKey: publicKey, SecretKey: secretKey}
	runtime.SetFinalizer(kp, func(kp *KeyPair) {
		oqs.ZeroizeBytes(kp.SecretKey)
	})
	return kp
}

// ClearSecrets zeroizes the secret key in place and detaches the defensive
// finalizer. Safe to call more than once. The key pair must not be used for
// cryptographic operations afterwards; nothing enforces that beyond this
// sentence.
func (kp *KeyPair) ClearSecrets() {
	if kp == nil {
		return
	}
	oqs.ZeroizeBytes(kp.SecretKey)
	runtime.SetFinalizer(kp, nil)
}

// PublicKeyBase64 returns the public key in standard base64. Never touches
// the secret key.
func (kp *KeyPair) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(kp.PublicKey)
}

// PublicKeyHex returns the public key in lowercase hex. Never touches the
// secret key.
func (kp *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(kp.PublicKey)
}

// InsecureStrings serializes BOTH keys, secret included, as base64.
//
// UNSAFE: the returned secret-key string is immune to ClearSecrets and will
// linger in managed memory. Never log, persist, or transmit it outside a
// deliberate key-export path.
func (kp *KeyPair) InsecureStrings() (publicKey, secretKey string) {
	return base64.StdEncoding.EncodeToString(kp.PublicKey),
		base64.StdEncoding.EncodeToString(kp.SecretKey)
}

// InsecureHexStrings serializes BOTH keys, secret included, as hex. Same
// warning as InsecureStrings.
func (kp *KeyPair) InsecureHexStrings() (publicKey, secretKey string) {
	return hex.EncodeToString(kp.PublicKey), hex.EncodeToString(kp.SecretKey)
}

// EncapsulationResult holds the outputs of Encapsulate. Ciphertext is safe to
// transmit; SharedSecret is secret material with the same clearing rules as
// KeyPair.SecretKey.
type EncapsulationResult struct {
	Ciphertext   []byte
	SharedSecret []byte
}

func newEncapsulationResult(ciphertext, sharedSecret []byte) *EncapsulationResult {
	r := &EncapsulationResult{Ciphertext: ciphertext, SharedSecret: sharedSecret}
	runtime.SetFinalizer(r, func(r *EncapsulationResult) {
		oqs.ZeroizeBytes(r.SharedSecret)
	})
	return r
}

// ClearSecrets zeroizes the shared secret in place and detaches the
// defensive finalizer. Safe to call more than once.
func (r *EncapsulationResult) ClearSecrets() {
	if r == nil {
		return
	}
	oqs.ZeroizeBytes(r.SharedSecret)
	runtime.SetFinalizer(r, nil)
}

// CiphertextBase64 returns the ciphertext in standard base64. Never touches
// the shared secret.
func (r *EncapsulationResult) CiphertextBase64() string {
	return base64.StdEncoding.EncodeToString(r.Ciphertext)
}

// CiphertextHex returns the ciphertext in lowercase hex. Never touches the
// shared secret.
func (r *EncapsulationResult) CiphertextHex() string {
	return hex.EncodeToString(r.Ciphertext)
}
