//go:build cgo && !windows

package backend

/*
#include <stdlib.h>
#include <oqs/oqs.h>

// The wrapper never dereferences a function-table entry directly: each call
// goes through a shim that re-checks for NULL so a partially initialized
// descriptor cannot crash the process.

static int kem_has_keypair(const OQS_KEM *kem) {
	return kem != NULL && kem->keypair != NULL;
}
static int kem_has_keypair_derand(const OQS_KEM *kem) {
	return kem != NULL && kem->keypair_derand != NULL;
}
static int kem_has_encaps(const OQS_KEM *kem) {
	return kem != NULL && kem->encaps != NULL;
}
static int kem_has_decaps(const OQS_KEM *kem) {
	return kem != NULL && kem->decaps != NULL;
}

static OQS_STATUS kem_call_keypair(const OQS_KEM *kem, uint8_t *pk, uint8_t *sk) {
	if (!kem_has_keypair(kem)) return OQS_ERROR;
	return kem->keypair(pk, sk);
}
static OQS_STATUS kem_call_keypair_derand(const OQS_KEM *kem, uint8_t *pk, uint8_t *sk, const uint8_t *seed) {
	if (!kem_has_keypair_derand(kem)) return OQS_ERROR;
	return kem->keypair_derand(pk, sk, seed);
}
static OQS_STATUS kem_call_encaps(const OQS_KEM *kem, uint8_t *ct, uint8_t *ss, const uint8_t *pk) {
	if (!kem_has_encaps(kem)) return OQS_ERROR;
	return kem->encaps(ct, ss, pk);
}
static OQS_STATUS kem_call_decaps(const OQS_KEM *kem, uint8_t *ss, const uint8_t *ct, const uint8_t *sk) {
	if (!kem_has_decaps(kem)) return OQS_ERROR;
	return kem->decaps(ss, ct, sk);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// NewKEM obtains the native capability table for the named KEM and wraps it
// in a KEMMechanism. Operation fields are left nil when the corresponding
// table entry is NULL.
func (p *liboqsProvider) NewKEM(name string) (*KEMMechanism, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	kem := C.OQS_KEM_new(cName)
	if kem == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmUnavailable, name)
	}

	m := &KEMMechanism{
		Name:               name,
		ClaimedNISTLevel:   int(kem.claimed_nist_level),
		INDCCA:             bool(kem.ind_cca),
		PublicKeyLength:    int(kem.length_public_key),
		SecretKeyLength:    int(kem.length_secret_key),
		CiphertextLength:   int(kem.length_ciphertext),
		SharedSecretLength: int(kem.length_shared_secret),
		SeedLength:         int(kem.length_keypair_seed),
		Free:               func() { C.OQS_KEM_free(kem) },
	}

	if C.kem_has_keypair(kem) != 0 {
		m.Keypair = func() ([]byte, []byte, error) {
			return kemKeypair(kem, m.PublicKeyLength, m.SecretKeyLength, nil)
		}
	}
	if C.kem_has_keypair_derand(kem) != 0 && m.SeedLength > 0 {
		m.KeypairFromSeed = func(seed []byte) ([]byte, []byte, error) {
			return kemKeypair(kem, m.PublicKeyLength, m.SecretKeyLength, seed)
		}
	}
	if C.kem_has_encaps(kem) != 0 {
		m.Encapsulate = func(publicKey []byte) ([]byte, []byte, error) {
			return kemEncaps(kem, m.CiphertextLength, m.SharedSecretLength, publicKey)
		}
	}
	if C.kem_has_decaps(kem) != 0 {
		m.Decapsulate = func(ciphertext, secretKey []byte) ([]byte, error) {
			return kemDecaps(kem, m.SharedSecretLength, ciphertext, secretKey)
		}
	}
	return m, nil
}

// kemKeypair runs the (possibly derandomized) key generation. A nil seed
// selects the randomized entry point. The native public key buffer is
// released as ordinary memory, the secret key buffer and the seed copy are
// erased before release.
func kemKeypair(kem *C.OQS_KEM, pkLen, skLen int, seed []byte) ([]byte, []byte, error) {
	pkPtr, err := allocate(pkLen)
	if err != nil {
		return nil, nil, err
	}
	defer release(pkPtr)

	skPtr, err := allocate(skLen)
	if err != nil {
		return nil, nil, err
	}
	defer secureRelease(skPtr, skLen)

	var status C.OQS_STATUS
	if seed == nil {
		status = C.kem_call_keypair(kem, (*C.uint8_t)(pkPtr), (*C.uint8_t)(skPtr))
	} else {
		seedPtr, err := toNative(seed)
		if err != nil {
			return nil, nil, err
		}
		defer secureRelease(seedPtr, len(seed))
		status = C.kem_call_keypair_derand(kem, (*C.uint8_t)(pkPtr), (*C.uint8_t)(skPtr), (*C.uint8_t)(seedPtr))
	}
	if status != C.OQS_SUCCESS {
		return nil, nil, StatusError(status)
	}

	publicKey, err := fromNative(pkPtr, pkLen)
	if err != nil {
		return nil, nil, err
	}
	secretKey, err := fromNative(skPtr, skLen)
	if err != nil {
		return nil, nil, err
	}
	return publicKey, secretKey, nil
}

func kemEncaps(kem *C.OQS_KEM, ctLen, ssLen int, publicKey []byte) ([]byte, []byte, error) {
	pkPtr, err := toNative(publicKey)
	if err != nil {
		return nil, nil, err
	}
	defer release(pkPtr)

	ctPtr, err := allocate(ctLen)
	if err != nil {
		return nil, nil, err
	}
	defer release(ctPtr)

	ssPtr, err := allocate(ssLen)
	if err != nil {
		return nil, nil, err
	}
	defer secureRelease(ssPtr, ssLen)

	status := C.kem_call_encaps(kem, (*C.uint8_t)(ctPtr), (*C.uint8_t)(ssPtr), (*C.uint8_t)(pkPtr))
	if status != C.OQS_SUCCESS {
		return nil, nil, StatusError(status)
	}

	ciphertext, err := fromNative(ctPtr, ctLen)
	if err != nil {
		return nil, nil, err
	}
	sharedSecret, err := fromNative(ssPtr, ssLen)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, sharedSecret, nil
}

func kemDecaps(kem *C.OQS_KEM, ssLen int, ciphertext, secretKey []byte) ([]byte, error) {
	ctPtr, err := toNative(ciphertext)
	if err != nil {
		return nil, err
	}
	defer release(ctPtr)

	skPtr, err := toNative(secretKey)
	if err != nil {
		return nil, err
	}
	defer secureRelease(skPtr, len(secretKey))

	ssPtr, err := allocate(ssLen)
	if err != nil {
		return nil, err
	}
	defer secureRelease(ssPtr, ssLen)

	status := C.kem_call_decaps(kem, (*C.uint8_t)(ssPtr), (*C.uint8_t)(ctPtr), (*C.uint8_t)(skPtr))
	if status != C.OQS_SUCCESS {
		return nil, StatusError(status)
	}
	return fromNative(ssPtr, ssLen)
}
