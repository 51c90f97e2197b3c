package sig_test

import (
	"errors"
	"testing"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/testoqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/sig"
)

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestSignVerifyAllAlgorithms(t *testing.T) {
	testoqs.Install(t)

	names, err := oqs.SupportedSignatures()
	if err != nil {
		t.Fatalf("SupportedSignatures: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no signature algorithms available")
	}

	message := []byte("the quick brown fox jumps over the lazy dog")
	tampered := []byte("the quick brown fox jumps over the lazy cog")

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			h, err := sig.New(name)
			if err != nil {
				t.Fatalf("New(%s): %v", name, err)
			}
			defer h.Close()

			kp, err := h.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			defer kp.ClearSecrets()

			signature, err := h.Sign(message, kp.SecretKey)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			details, err := h.Details()
			if err != nil {
				t.Fatalf("Details: %v", err)
			}
			if len(signature) == 0 || len(signature) > details.MaxSignatureLength {
				t.Fatalf("signature length %d outside (0, %d]", len(signature), details.MaxSignatureLength)
			}

			ok, err := h.Verify(message, signature, kp.PublicKey)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !ok {
				t.Fatal("valid signature rejected")
			}

			ok, err = h.Verify(tampered, signature, kp.PublicKey)
			if err != nil {
				t.Fatalf("Verify tampered: %v", err)
			}
			if ok {
				t.Fatal("tampered message accepted")
			}

			other, err := h.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair (other): %v", err)
			}
			defer other.ClearSecrets()

			ok, err = h.Verify(message, signature, other.PublicKey)
			if err != nil {
				t.Fatalf("Verify wrong key: %v", err)
			}
			if ok {
				t.Fatal("signature accepted under the wrong public key")
			}
		})
	}
}

func TestSignValidation(t *testing.T) {
	testoqs.Install(t)

	h, err := sig.New("ML-DSA-65")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	kp, err := h.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer kp.ClearSecrets()

	if _, err := h.Sign(nil, kp.SecretKey); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("empty message: got %v, want ErrInvalidArgument", err)
	}
	if _, err := h.Sign([]byte{}, kp.SecretKey); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("zero-length message: got %v, want ErrInvalidArgument", err)
	}
	if _, err := h.Sign([]byte("msg"), kp.SecretKey[:10]); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("truncated secret key: got %v, want ErrInvalidArgument", err)
	}
}

func TestVerifyValidation(t *testing.T) {
	testoqs.Install(t)

	h, err := sig.New("ML-DSA-65")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	kp, err := h.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer kp.ClearSecrets()

	message := []byte("message")
	signature, err := h.Sign(message, kp.SecretKey)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	details, _ := h.Details()

	// Validation failures must surface before any native call.
	if _, err := h.Verify(message, signature, kp.PublicKey[:len(kp.PublicKey)-1]); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("short public key: got %v, want ErrInvalidArgument", err)
	}
	if _, err := h.Verify(message, nil, kp.PublicKey); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("empty signature: got %v, want ErrInvalidArgument", err)
	}
	oversized := make([]byte, details.MaxSignatureLength+1)
	if _, err := h.Verify(message, oversized, kp.PublicKey); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("oversized signature: got %v, want ErrInvalidArgument", err)
	}

	// A wrong-sized-but-in-bounds signature is a normal false, not an error.
	ok, err := h.Verify(message, signature[:len(signature)-1], kp.PublicKey)
	if err != nil {
		t.Fatalf("truncated signature: %v", err)
	}
	if ok {
		t.Fatal("truncated signature accepted")
	}
}

func TestCreateValidation(t *testing.T) {
	testoqs.Install(t)

	if _, err := sig.New("ML/DSA/65"); !errors.Is(err, oqs.ErrInvalidArgument) {
		t.Fatalf("bad charset: got %v, want ErrInvalidArgument", err)
	}
	if _, err := sig.New("No-Such-Sig"); !errors.Is(err, oqs.ErrAlgorithmUnavailable) {
		t.Fatalf("unknown algorithm: got %v, want ErrAlgorithmUnavailable", err)
	}
}

func TestDisposalSafety(t *testing.T) {
	testoqs.Install(t)

	h, err := sig.New("ML-DSA-65")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	kp, err := h.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer kp.ClearSecrets()

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := h.Details(); !errors.Is(err, oqs.ErrHandleClosed) {
		t.Fatalf("Details after Close: got %v, want ErrHandleClosed", err)
	}
	if _, err := h.Sign([]byte("msg"), kp.SecretKey); !errors.Is(err, oqs.ErrHandleClosed) {
		t.Fatalf("Sign after Close: got %v, want ErrHandleClosed", err)
	}
	if _, err := h.Verify([]byte("msg"), []byte{1}, kp.PublicKey); !errors.Is(err, oqs.ErrHandleClosed) {
		t.Fatalf("Verify after Close: got %v, want ErrHandleClosed", err)
	}
}

func TestCorruptedDescriptor(t *testing.T) {
	testoqs.Install(t, testoqs.WithCorruptedMechanisms("ML-DSA-44"))

	h, err := sig.New("ML-DSA-44")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	if _, err := h.GenerateKeyPair(); !errors.Is(err, oqs.ErrCorruptDescriptor) {
		t.Fatalf("GenerateKeyPair: got %v, want ErrCorruptDescriptor", err)
	}
	details, err := h.Details()
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if _, err := h.Sign([]byte("msg"), make([]byte, details.SecretKeyLength)); !errors.Is(err, oqs.ErrCorruptDescriptor) {
		t.Fatalf("Sign: got %v, want ErrCorruptDescriptor", err)
	}
	if _, err := h.Verify([]byte("msg"), []byte{1}, make([]byte, details.PublicKeyLength)); !errors.Is(err, oqs.ErrCorruptDescriptor) {
		t.Fatalf("Verify: got %v, want ErrCorruptDescriptor", err)
	}
}

func TestClearSecretsIdempotent(t *testing.T) {
	testoqs.Install(t)

	h, err := sig.New("ML-DSA-65")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	kp, err := h.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if allZero(kp.SecretKey) {
		t.Fatal("fresh secret key should not be all zero")
	}
	kp.ClearSecrets()
	if !allZero(kp.SecretKey) {
		t.Fatal("secret key not zeroed after ClearSecrets")
	}
	kp.ClearSecrets()
	if !allZero(kp.SecretKey) {
		t.Fatal("secret key not zero after second ClearSecrets")
	}
}
