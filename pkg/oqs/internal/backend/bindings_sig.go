//go:build cgo && !windows

package backend

/*
#include <stdlib.h>
#include <oqs/oqs.h>

static int sig_has_keypair(const OQS_SIG *sig) {
	return sig != NULL && sig->keypair != NULL;
}
static int sig_has_sign(const OQS_SIG *sig) {
	return sig != NULL && sig->sign != NULL;
}
static int sig_has_verify(const OQS_SIG *sig) {
	return sig != NULL && sig->verify != NULL;
}

static OQS_STATUS sig_call_keypair(const OQS_SIG *sig, uint8_t *pk, uint8_t *sk) {
	if (!sig_has_keypair(sig)) return OQS_ERROR;
	return sig->keypair(pk, sk);
}
static OQS_STATUS sig_call_sign(const OQS_SIG *sig, uint8_t *out, size_t *out_len,
		const uint8_t *msg, size_t msg_len, const uint8_t *sk) {
	if (!sig_has_sign(sig)) return OQS_ERROR;
	return sig->sign(out, out_len, msg, msg_len, sk);
}
static OQS_STATUS sig_call_verify(const OQS_SIG *sig, const uint8_t *msg, size_t msg_len,
		const uint8_t *signature, size_t signature_len, const uint8_t *pk) {
	if (!sig_has_verify(sig)) return OQS_ERROR;
	return sig->verify(msg, msg_len, signature, signature_len, pk);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// NewSig obtains the native capability table for the named signature scheme
// and wraps it in a SigMechanism.
func (p *liboqsProvider) NewSig(name string) (*SigMechanism, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	sig := C.OQS_SIG_new(cName)
	if sig == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmUnavailable, name)
	}

	m := &SigMechanism{
		Name:               name,
		ClaimedNISTLevel:   int(sig.claimed_nist_level),
		EUFCMA:             bool(sig.euf_cma),
		PublicKeyLength:    int(sig.length_public_key),
		SecretKeyLength:    int(sig.length_secret_key),
		MaxSignatureLength: int(sig.length_signature),
		Free:               func() { C.OQS_SIG_free(sig) },
	}

	if C.sig_has_keypair(sig) != 0 {
		m.Keypair = func() ([]byte, []byte, error) {
			return sigKeypair(sig, m.PublicKeyLength, m.SecretKeyLength)
		}
	}
	if C.sig_has_sign(sig) != 0 {
		m.Sign = func(message, secretKey []byte) ([]byte, error) {
			return sigSign(sig, m.MaxSignatureLength, message, secretKey)
		}
	}
	if C.sig_has_verify(sig) != 0 {
		m.Verify = func(message, signature, publicKey []byte) (bool, error) {
			return sigVerify(sig, message, signature, publicKey)
		}
	}
	return m, nil
}

func sigKeypair(sig *C.OQS_SIG, pkLen, skLen int) ([]byte, []byte, error) {
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

	status := C.sig_call_keypair(sig, (*C.uint8_t)(pkPtr), (*C.uint8_t)(skPtr))
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

// sigSign signs message. The output buffer is sized to the scheme's maximum
// signature length; the native call reports the actual length through an
// output cell and only that many bytes are copied back.
func sigSign(sig *C.OQS_SIG, maxLen int, message, secretKey []byte) ([]byte, error) {
	msgPtr, err := toNative(message)
	if err != nil {
		return nil, err
	}
	defer release(msgPtr)

	skPtr, err := toNative(secretKey)
	if err != nil {
		return nil, err
	}
	defer secureRelease(skPtr, len(secretKey))

	outPtr, err := allocate(maxLen)
	if err != nil {
		return nil, err
	}
	defer release(outPtr)

	outLen := C.size_t(maxLen)
	status := C.sig_call_sign(sig, (*C.uint8_t)(outPtr), &outLen,
		(*C.uint8_t)(msgPtr), C.size_t(len(message)), (*C.uint8_t)(skPtr))
	if status != C.OQS_SUCCESS {
		return nil, StatusError(status)
	}
	if int(outLen) > maxLen {
		return nil, fmt.Errorf("native sign reported length %d beyond buffer of %d", int(outLen), maxLen)
	}
	return fromNative(outPtr, int(outLen))
}

// sigVerify reports whether signature is valid. An invalid signature is a
// normal false result, not an error. Unlike signing, verification accepts an
// empty message: the tamper checks in callers compare arbitrary messages.
func sigVerify(sig *C.OQS_SIG, message, signature, publicKey []byte) (bool, error) {
	var msgPtr unsafe.Pointer
	if len(message) > 0 {
		var err error
		msgPtr, err = toNative(message)
		if err != nil {
			return false, err
		}
		defer release(msgPtr)
	}

	sigPtr, err := toNative(signature)
	if err != nil {
		return false, err
	}
	defer release(sigPtr)

	pkPtr, err := toNative(publicKey)
	if err != nil {
		return false, err
	}
	defer release(pkPtr)

	status := C.sig_call_verify(sig, (*C.uint8_t)(msgPtr), C.size_t(len(message)),
		(*C.uint8_t)(sigPtr), C.size_t(len(signature)), (*C.uint8_t)(pkPtr))
	return status == C.OQS_SUCCESS, nil
}
