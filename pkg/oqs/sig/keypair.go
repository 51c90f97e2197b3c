package sig

import (
	"encoding/base64"
	"encoding/hex"
	"runtime"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
)

// KeyPair holds a signing key pair. PublicKey is safe to share; SecretKey is
// secret material, defensively zeroized by a finalizer if ClearSecrets is
// never called.
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
// finalizer. Safe to call more than once; the key pair must not be used for
// signing afterwards.
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
