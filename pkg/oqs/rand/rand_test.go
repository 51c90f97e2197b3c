package rand_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djx-y-z/liboqs-go/pkg/oqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/backend"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/internal/testoqs"
	"github.com/djx-y-z/liboqs-go/pkg/oqs/rand"
)

func TestBytesBounds(t *testing.T) {
	testoqs.Install(t)

	_, err := rand.Bytes(0)
	require.ErrorIs(t, err, oqs.ErrInvalidArgument)

	_, err = rand.Bytes(-1)
	require.ErrorIs(t, err, oqs.ErrInvalidArgument)

	_, err = rand.Bytes(rand.MaxBytes + 1)
	require.ErrorIs(t, err, oqs.ErrInvalidArgument)

	buf, err := rand.Bytes(rand.MaxBytes)
	require.NoError(t, err)
	require.Len(t, buf, rand.MaxBytes)

	buf, err = rand.Bytes(1)
	require.NoError(t, err)
	require.Len(t, buf, 1)
}

func TestSeed(t *testing.T) {
	testoqs.Install(t)

	seed, err := rand.Seed()
	require.NoError(t, err)
	require.Len(t, seed, rand.SeedLength)
}

func TestBytesDeterministicStream(t *testing.T) {
	streamSeed := []byte("reproducible-stream-seed")

	var first, second []byte
	t.Run("first draw", func(t *testing.T) {
		testoqs.Install(t, testoqs.WithDeterministicRandom(streamSeed))
		var err error
		first, err = rand.Bytes(64)
		require.NoError(t, err)
	})
	t.Run("second draw", func(t *testing.T) {
		testoqs.Install(t, testoqs.WithDeterministicRandom(streamSeed))
		var err error
		second, err = rand.Bytes(64)
		require.NoError(t, err)
	})

	require.Equal(t, first, second, "same stream seed must yield the same bytes")
}

func TestIntRangeValidation(t *testing.T) {
	testoqs.Install(t)

	_, err := rand.Int(5, 5)
	require.ErrorIs(t, err, oqs.ErrInvalidArgument)

	_, err = rand.Int(6, 5)
	require.ErrorIs(t, err, oqs.ErrInvalidArgument)
}

func TestIntStaysInRange(t *testing.T) {
	testoqs.Install(t)

	cases := []struct{ min, max int64 }{
		{0, 2},
		{0, 10},
		{-5, 5},
		{-1000, -900},
		{0, 256},
		{0, 257},
		{1 << 40, 1<<40 + 3},
		{math.MinInt64, math.MaxInt64},
	}
	for _, tc := range cases {
		for i := 0; i < 200; i++ {
			v, err := rand.Int(tc.min, tc.max)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, tc.min)
			assert.Less(t, v, tc.max)
		}
	}
}

func TestIntSingleValueRange(t *testing.T) {
	testoqs.Install(t)

	for i := 0; i < 20; i++ {
		v, err := rand.Int(7, 8)
		require.NoError(t, err)
		require.EqualValues(t, 7, v)
	}
}

func TestIntCoversSmallRange(t *testing.T) {
	testoqs.Install(t)

	seen := make(map[int64]bool)
	for i := 0; i < 500; i++ {
		v, err := rand.Int(0, 5)
		require.NoError(t, err)
		seen[v] = true
	}
	for want := int64(0); want < 5; want++ {
		assert.True(t, seen[want], "value %d never drawn in 500 trials", want)
	}
}

// saturatedProvider simulates a degenerate random source that only ever
// produces 0xFF. Every draw for a range of 200 then lands in the biased tail
// and is rejected, so Int must hit its retry ceiling instead of spinning.
type saturatedProvider struct {
	*testoqs.Provider
}

func (saturatedProvider) RandomBytes(buf []byte) error {
	for i := range buf {
		buf[i] = 0xFF
	}
	return nil
}

func TestIntRejectionCeiling(t *testing.T) {
	restore := backend.SetProvider(saturatedProvider{testoqs.New()})
	t.Cleanup(restore)

	_, err := rand.Int(0, 200)
	require.ErrorIs(t, err, oqs.ErrEntropyExhausted)
}

func TestBool(t *testing.T) {
	testoqs.Install(t)

	sawTrue, sawFalse := false, false
	for i := 0; i < 200 && !(sawTrue && sawFalse); i++ {
		v, err := rand.Bool()
		require.NoError(t, err)
		if v {
			sawTrue = true
		} else {
			sawFalse = true
		}
	}
	assert.True(t, sawTrue, "no true in 200 draws")
	assert.True(t, sawFalse, "no false in 200 draws")
}

func TestFloat64Range(t *testing.T) {
	testoqs.Install(t)

	for i := 0; i < 500; i++ {
		v, err := rand.Float64()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestShufflePreservesElements(t *testing.T) {
	testoqs.Install(t)

	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	require.NoError(t, rand.Shuffle(items))

	seen := make(map[int]int)
	for _, v := range items {
		seen[v]++
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, 1, seen[i], "element %d count", i)
	}
}

func TestShuffleDeterministicStream(t *testing.T) {
	streamSeed := []byte("shuffle-stream")

	shuffleOnce := func(t *testing.T) []int {
		testoqs.Install(t, testoqs.WithDeterministicRandom(streamSeed))
		items := make([]int, 20)
		for i := range items {
			items[i] = i
		}
		require.NoError(t, rand.Shuffle(items))
		return items
	}

	var first, second []int
	t.Run("first", func(t *testing.T) { first = shuffleOnce(t) })
	t.Run("second", func(t *testing.T) { second = shuffleOnce(t) })
	require.Equal(t, first, second)
}

func TestShuffleTrivialInputs(t *testing.T) {
	testoqs.Install(t)

	require.NoError(t, rand.Shuffle[int](nil))
	require.NoError(t, rand.Shuffle([]string{"only"}))
}

func TestNoProvider(t *testing.T) {
	restore := backend.SetProvider(nil)
	t.Cleanup(restore)

	_, err := rand.Bytes(16)
	require.ErrorIs(t, err, oqs.ErrNotBuilt)
}
