package oqs_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

func TestRemapErrorNil(t *testing.T) {
	if err := oqs.RemapError("kem.Encapsulate", "ML-KEM-768", nil); err != nil {
		t.Fatalf("RemapError(nil) = %v", err)
	}
}

func TestRemapErrorNotBuiltPassesThrough(t *testing.T) {
	err := oqs.RemapError("Init", "", backend.ErrNotBuilt)
	if !errors.Is(err, oqs.ErrNotBuilt) {
		t.Fatalf("ErrNotBuilt did not survive remapping: %v", err)
	}
	var le *oqs.LibraryError
	if errors.As(err, &le) {
		t.Fatalf("ErrNotBuilt must not be wrapped in a LibraryError, got %v", err)
	}
}

func TestRemapErrorUnavailableAlgorithm(t *testing.T) {
	err := oqs.RemapError("kem.New", "Kyber1024-90s", backend.ErrAlgorithmUnavailable)
	if !errors.Is(err, oqs.ErrAlgorithmUnavailable) {
		t.Fatalf("want ErrAlgorithmUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "Kyber1024-90s") {
		t.Fatalf("message lacks the algorithm name: %q", err.Error())
	}
}

func TestRemapErrorStatusCode(t *testing.T) {
	native := fmt.Errorf("native failure: %w", backend.StatusError(-1))
	err := oqs.RemapError("sig.Sign", "ML-DSA-65", native)

	var le *oqs.LibraryError
	if !errors.As(err, &le) {
		t.Fatalf("want *LibraryError, got %T", err)
	}
	if le.Op != "sig.Sign" || le.Algorithm != "ML-DSA-65" {
		t.Fatalf("context lost: op=%q alg=%q", le.Op, le.Algorithm)
	}
	if le.Code != -1 {
		t.Fatalf("Code = %d, want -1", le.Code)
	}
	if !errors.Is(err, backend.StatusError(-1)) {
		t.Fatalf("native status not reachable through Unwrap: %v", err)
	}
}

func TestLibraryErrorMessage(t *testing.T) {
	le := &oqs.LibraryError{
		Op:        "kem.Decapsulate",
		Algorithm: "ML-KEM-1024",
		Code:      -2,
		Err:       errors.New("boom"),
	}
	msg := le.Error()
	for _, want := range []string{"kem.Decapsulate", "ML-KEM-1024", "boom", "-2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q lacks %q", msg, want)
		}
	}

	bare := &oqs.LibraryError{Op: "Init"}
	if got := bare.Error(); got != "oqs.Init" {
		t.Errorf("bare message = %q", got)
	}
}
