package backend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAlgorithmName(t *testing.T) {
	valid := []string{
		"ML-KEM-768",
		"ML-DSA-65",
		"Kyber768",
		"FrodoKEM-640-AES",
		"sntrup761",
		"SPHINCS+-SHA2-128s-simple",
		"Classic-McEliece-348864",
		"a_b-c+d9",
	}
	for _, name := range valid {
		assert.NoError(t, ValidateAlgorithmName(name), "name %q", name)
	}

	invalid := []string{
		"",
		"ML KEM 768",
		"ML-KEM-768\x00",
		"ML-KEM-768;rm -rf",
		"ключ",
		"ML.KEM.768",
		strings.Repeat("a", MaxAlgorithmNameLength+1),
	}
	for _, name := range invalid {
		assert.Error(t, ValidateAlgorithmName(name), "name %q", name)
	}

	// Exactly at the length bound is still valid.
	assert.NoError(t, ValidateAlgorithmName(strings.Repeat("a", MaxAlgorithmNameLength)))
}

func TestProviderRegistry(t *testing.T) {
	orig, origErr := Active()

	restore := SetProvider(nil)
	_, err := Active()
	require.ErrorIs(t, err, ErrNotBuilt)

	restore()
	p, err := Active()
	if origErr != nil {
		require.ErrorIs(t, err, ErrNotBuilt)
	} else {
		require.NoError(t, err)
		require.Equal(t, orig, p)
	}
}

func TestStatusError(t *testing.T) {
	err := StatusError(-1)
	assert.Contains(t, err.Error(), "-1")
}
