package rand

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
)

// MaxBytes bounds a single Bytes request. Callers needing more should ask in
// chunks; a larger single request is more likely a length-computation bug
// than an intent.
const MaxBytes = 1 << 20

// SeedLength is the byte length returned by Seed.
const SeedLength = 32

// maxRejectionRetries bounds the rejection-sampling loop in Int. Expected
// retries are below two per draw, so hundreds of consecutive rejections mean
// the random source is degenerate, and failing is safer than spinning.
const maxRejectionRetries = 256

// Bytes returns length cryptographically secure random bytes from the native
// generator. Valid lengths are 1 through MaxBytes.
func Bytes(length int) ([]byte, error) {
	if length <= 0 || length > MaxBytes {
		return nil, fmt.Errorf("%w: length must be between 1 and %d, got %d", oqs.ErrInvalidArgument, MaxBytes, length)
	}
	p, err := backend.Active()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if err := p.RandomBytes(buf); err != nil {
		return nil, oqs.RemapError("rand.Bytes", "", err)
	}
	return buf, nil
}

// Seed returns a fresh 32-byte seed. Use Bytes directly for other lengths,
// such as a KEM's derandomized-keygen seed length.
func Seed() ([]byte, error) {
	return Bytes(SeedLength)
}

// Int returns a uniformly distributed integer in the half-open range
// [min, max). Uniformity is exact: values are drawn at the minimal byte width
// covering the range and redrawn whenever they fall into the biased tail
// above the largest contained multiple of the range (rejection sampling).
func Int(min, max int64) (int64, error) {
	if min >= max {
		return 0, fmt.Errorf("%w: min %d must be below max %d", oqs.ErrInvalidArgument, min, max)
	}
	// The subtraction wraps for extreme inputs, but reinterpreting the wrapped
	// value as uint64 recovers the true range size, which always fits.
	rangeSize := uint64(max - min)

	k := byteWidth(rangeSize)
	// maxUsable is the largest multiple of rangeSize representable in k
	// bytes; zero encodes 2^(8k), meaning every draw is usable.
	var maxUsable uint64
	if k < 8 {
		limit := uint64(1) << (8 * uint(k))
		maxUsable = limit - limit%rangeSize
	} else {
		maxUsable = -((math.MaxUint64%rangeSize + 1) % rangeSize)
	}

	for attempt := 0; attempt < maxRejectionRetries; attempt++ {
		raw, err := Bytes(k)
		if err != nil {
			return 0, err
		}
		var value uint64
		for _, b := range raw {
			value = value<<8 | uint64(b)
		}
		if maxUsable == 0 || value < maxUsable {
			return min + int64(value%rangeSize), nil
		}
	}
	return 0, fmt.Errorf("%w: %d consecutive rejections sampling [%d, %d)", oqs.ErrEntropyExhausted, maxRejectionRetries, min, max)
}

// byteWidth returns the minimal number of bytes k with 2^(8k) >= rangeSize.
func byteWidth(rangeSize uint64) int {
	if rangeSize <= 1 {
		return 1
	}
	k := (bits.Len64(rangeSize-1) + 7) / 8
	if k == 0 {
		k = 1
	}
	return k
}

// Bool returns an unbiased random boolean.
func Bool() (bool, error) {
	b, err := Bytes(1)
	if err != nil {
		return false, err
	}
	return b[0]&1 == 1, nil
}

// Float64 returns a uniformly distributed float in [0, 1) with the full 53
// bits of mantissa precision.
func Float64() (float64, error) {
	raw, err := Bytes(8)
	if err != nil {
		return 0, err
	}
	var value uint64
	for _, b := range raw {
		value = value<<8 | uint64(b)
	}
	return float64(value>>11) / (1 << 53), nil
}

// Shuffle permutes items in place with a Fisher-Yates walk from the last
// index down, drawing each swap index from Int so the permutation is
// unbiased.
func Shuffle[T any](items []T) error {
	for i := len(items) - 1; i >= 1; i-- {
		j, err := Int(0, int64(i)+1)
		if err != nil {
			return err
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}
