package testoqs

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
	"golang.org/x/crypto/sha3"

	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

type kemEntry struct {
	scheme kem.Scheme
	level  int
}

type sigEntry struct {
	scheme sign.Scheme
	level  int
}

var kemSchemes = map[string]kemEntry{
	"ML-KEM-512":  {mlkem512.Scheme(), 1},
	"ML-KEM-768":  {mlkem768.Scheme(), 3},
	"ML-KEM-1024": {mlkem1024.Scheme(), 5},
}

var sigSchemes = map[string]sigEntry{
	"ML-DSA-44": {mldsa44.Scheme(), 2},
	"ML-DSA-65": {mldsa65.Scheme(), 3},
	"ML-DSA-87": {mldsa87.Scheme(), 5},
}

// Provider implements backend.Provider on pure-Go circl schemes.
type Provider struct {
	mu        sync.Mutex
	rng       io.Reader
	noDerand  map[string]bool
	corrupted map[string]bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithDeterministicRandom replaces the random source with a SHAKE256 stream
// expanded from seed, making every randomized operation reproducible.
func WithDeterministicRandom(seed []byte) Option {
	return func(p *Provider) {
		shake := sha3.NewShake256()
		shake.Write(seed)
		p.rng = shake
	}
}

// WithoutDerandomizedKeyGen makes the named KEM algorithms advertise no seed
// support, exercising the capability-query error path.
func WithoutDerandomizedKeyGen(names ...string) Option {
	return func(p *Provider) {
		for _, name := range names {
			p.noDerand[name] = true
		}
	}
}

// WithCorruptedMechanisms serves the named algorithms with an empty function
// table, simulating a partially initialized native descriptor.
func WithCorruptedMechanisms(names ...string) Option {
	return func(p *Provider) {
		for _, name := range names {
			p.corrupted[name] = true
		}
	}
}

// New creates a Provider. Without options it uses crypto/rand and serves all
// schemes fully capable.
func New(opts ...Option) *Provider {
	p := &Provider{
		rng:       crand.Reader,
		noDerand:  make(map[string]bool),
		corrupted: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Install registers a new Provider as the active backend for the duration of
// the test and restores the previous one on cleanup.
func Install(t testing.TB, opts ...Option) *Provider {
	t.Helper()
	p := New(opts...)
	restore := backend.SetProvider(p)
	t.Cleanup(restore)
	return p
}

func (p *Provider) Name() string { return "testoqs" }

func (p *Provider) Version() string { return "0.0.0-testoqs" }

func (p *Provider) Init() error { return nil }

func (p *Provider) ThreadStop() {}

func (p *Provider) Destroy() {}

func (p *Provider) RandomBytes(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.ReadFull(p.rng, buf)
	return err
}

func (p *Provider) KEMs() []string {
	return []string{"ML-KEM-512", "ML-KEM-768", "ML-KEM-1024"}
}

func (p *Provider) IsKEMEnabled(name string) bool {
	_, ok := kemSchemes[name]
	return ok
}

func (p *Provider) Sigs() []string {
	return []string{"ML-DSA-44", "ML-DSA-65", "ML-DSA-87"}
}

func (p *Provider) IsSigEnabled(name string) bool {
	_, ok := sigSchemes[name]
	return ok
}

func (p *Provider) NewKEM(name string) (*backend.KEMMechanism, error) {
	entry, ok := kemSchemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrAlgorithmUnavailable, name)
	}
	scheme := entry.scheme
	m := &backend.KEMMechanism{
		Name:               name,
		ClaimedNISTLevel:   entry.level,
		INDCCA:             true,
		PublicKeyLength:    scheme.PublicKeySize(),
		SecretKeyLength:    scheme.PrivateKeySize(),
		CiphertextLength:   scheme.CiphertextSize(),
		SharedSecretLength: scheme.SharedKeySize(),
		SeedLength:         scheme.SeedSize(),
		Free:               func() {},
	}
	if p.corrupted[name] {
		return m, nil
	}
	m.Keypair = func() ([]byte, []byte, error) {
		seed := make([]byte, scheme.SeedSize())
		if err := p.RandomBytes(seed); err != nil {
			return nil, nil, err
		}
		return p.deriveKEMKeyPair(scheme, seed)
	}
	if !p.noDerand[name] {
		m.KeypairFromSeed = func(seed []byte) ([]byte, []byte, error) {
			return p.deriveKEMKeyPair(scheme, seed)
		}
	} else {
		m.SeedLength = 0
	}
	m.Encapsulate = func(publicKey []byte) ([]byte, []byte, error) {
		pk, err := scheme.UnmarshalBinaryPublicKey(publicKey)
		if err != nil {
			return nil, nil, err
		}
		encSeed := make([]byte, scheme.EncapsulationSeedSize())
		if err := p.RandomBytes(encSeed); err != nil {
			return nil, nil, err
		}
		return scheme.EncapsulateDeterministically(pk, encSeed)
	}
	m.Decapsulate = func(ciphertext, secretKey []byte) ([]byte, error) {
		sk, err := scheme.UnmarshalBinaryPrivateKey(secretKey)
		if err != nil {
			return nil, err
		}
		return scheme.Decapsulate(sk, ciphertext)
	}
	return m, nil
}

func (p *Provider) deriveKEMKeyPair(scheme kem.Scheme, seed []byte) ([]byte, []byte, error) {
	if len(seed) != scheme.SeedSize() {
		return nil, nil, fmt.Errorf("seed must be %d bytes, got %d", scheme.SeedSize(), len(seed))
	}
	pk, sk := scheme.DeriveKeyPair(seed)
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pkBytes, skBytes, nil
}

func (p *Provider) NewSig(name string) (*backend.SigMechanism, error) {
	entry, ok := sigSchemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", backend.ErrAlgorithmUnavailable, name)
	}
	scheme := entry.scheme
	m := &backend.SigMechanism{
		Name:               name,
		ClaimedNISTLevel:   entry.level,
		EUFCMA:             true,
		PublicKeyLength:    scheme.PublicKeySize(),
		SecretKeyLength:    scheme.PrivateKeySize(),
		MaxSignatureLength: scheme.SignatureSize(),
		Free:               func() {},
	}
	if p.corrupted[name] {
		return m, nil
	}
	m.Keypair = func() ([]byte, []byte, error) {
		seed := make([]byte, scheme.SeedSize())
		if err := p.RandomBytes(seed); err != nil {
			return nil, nil, err
		}
		pk, sk := scheme.DeriveKey(seed)
		pkBytes, err := pk.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		skBytes, err := sk.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		return pkBytes, skBytes, nil
	}
	m.Sign = func(message, secretKey []byte) ([]byte, error) {
		sk, err := scheme.UnmarshalBinaryPrivateKey(secretKey)
		if err != nil {
			return nil, err
		}
		return scheme.Sign(sk, message, nil), nil
	}
	m.Verify = func(message, signature, publicKey []byte) (bool, error) {
		pk, err := scheme.UnmarshalBinaryPublicKey(publicKey)
		if err != nil {
			return false, err
		}
		return scheme.Verify(pk, message, signature, nil), nil
	}
	return m, nil
}
