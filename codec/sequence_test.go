package codec

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/arloliu/cindex/errs"
	"github.com/stretchr/testify/require"
)

func TestWordsToIndex(t *testing.T) {
	tests := []struct {
		name     string
		words    []uint32
		bitDepth int
		index    string
	}{
		{"empty", nil, 8, "0"},
		{"single byte", []uint32{0xff}, 8, "255"},
		{"two bytes", []uint32{1, 0}, 8, "256"},
		{"bits", []uint32{1, 0, 1, 1}, 1, "11"},
		{"24-bit default", []uint32{1, 2}, DefaultBitDepth, "16777218"},
		{"32-bit max", []uint32{0xffffffff, 0xffffffff}, 32, "18446744073709551615"},
		{"leading zeros", []uint32{0, 0, 7}, 3, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WordsToIndex(tt.words, tt.bitDepth)
			require.NoError(t, err)
			require.Equal(t, tt.index, got.String())
		})
	}
}

func TestWordsToIndex_WordOutOfRange(t *testing.T) {
	_, err := WordsToIndex([]uint32{1, 256}, 8)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	var wordErr *errs.WordOutOfRangeError
	require.True(t, errors.As(err, &wordErr))
	require.Equal(t, "256", wordErr.Value)
	require.Equal(t, 8, wordErr.BitDepth)
	require.Equal(t, 1, wordErr.Position)
}

func TestWordsToIndex_UnsupportedBitDepth(t *testing.T) {
	for _, depth := range []int{0, -1, 33, 64} {
		_, err := WordsToIndex([]uint32{1}, depth)
		require.ErrorIs(t, err, errs.ErrUnsupportedModality, "depth %d", depth)

		_, err = IndexToWords(big.NewInt(1), 1, depth)
		require.ErrorIs(t, err, errs.ErrUnsupportedModality, "depth %d", depth)
	}
}

func TestIndexToWords(t *testing.T) {
	words, err := IndexToWords(big.NewInt(256), 3, 8)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 0}, words)

	words, err = IndexToWords(big.NewInt(0), 3, 8)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 0}, words)

	words, err = IndexToWords(big.NewInt(0), 0, 8)
	require.NoError(t, err)
	require.Empty(t, words)

	words, err = IndexToWords(big.NewInt(256), MinimalLength, 8)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 0}, words)
}

func TestIndexToWords_OutOfRange(t *testing.T) {
	_, err := IndexToWords(big.NewInt(256), 1, 8)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	// nonzero index never fits in zero words
	_, err = IndexToWords(big.NewInt(1), 0, 8)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = IndexToWords(big.NewInt(-1), 4, 8)
	require.ErrorIs(t, err, errs.ErrNegativeIndex)
}

func TestMinSequenceLength(t *testing.T) {
	tests := []struct {
		index    int64
		bitDepth int
		want     int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{255, 8, 1},
		{256, 8, 2},
		{1 << 24, 24, 2},
		{(1 << 24) - 1, 24, 1},
		{5, 1, 3},
	}
	for _, tt := range tests {
		got, err := MinSequenceLength(big.NewInt(tt.index), tt.bitDepth)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "index %d depth %d", tt.index, tt.bitDepth)
	}

	_, err := MinSequenceLength(big.NewInt(1), 0)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)

	// word-sized lengths follow the same width limit as IndexToWords
	_, err = MinSequenceLength(big.NewInt(1), MaxWordBitDepth+1)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)
	_, err = IndexToWords(big.NewInt(1), MinimalLength, MaxWordBitDepth+1)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)

	got, err := MinWideSequenceLength(new(big.Int).Lsh(big.NewInt(1), 40), 40)
	require.NoError(t, err)
	require.Equal(t, 2, got)

	_, err = MinWideSequenceLength(big.NewInt(1), MaxWideBitDepth+1)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)
}

func TestSequence_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for bitDepth := MinBitDepth; bitDepth <= MaxWordBitDepth; bitDepth++ {
		for range 20 {
			index := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), uint(rnd.Intn(256)+1)))

			minLen, err := MinSequenceLength(index, bitDepth)
			require.NoError(t, err)

			for _, length := range []int{minLen, minLen + 2} {
				words, err := IndexToWords(index, length, bitDepth)
				require.NoError(t, err)
				require.Len(t, words, length)

				back, err := WordsToIndex(words, bitDepth)
				require.NoError(t, err)
				require.Zero(t, index.Cmp(back), "index %s depth %d length %d", index, bitDepth, length)
			}

			if minLen > 0 {
				_, err = IndexToWords(index, minLen-1, bitDepth)
				require.ErrorIs(t, err, errs.ErrOutOfRange)
			}
		}
	}
}

func TestWideSequence_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))

	for _, bitDepth := range []int{1, 33, 64, 100, 521, MaxWideBitDepth} {
		index := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), 5000))

		minLen, err := MinWideSequenceLength(index, bitDepth)
		require.NoError(t, err)

		words, err := IndexToWideWords(index, minLen+1, bitDepth)
		require.NoError(t, err)
		require.Len(t, words, minLen+1)
		require.Zero(t, words[0].Sign())

		back, err := WideWordsToIndex(words, bitDepth)
		require.NoError(t, err)
		require.Zero(t, index.Cmp(back), "depth %d", bitDepth)
	}
}

func TestWideWordsToIndex_Errors(t *testing.T) {
	_, err := WideWordsToIndex([]*big.Int{big.NewInt(-1)}, 64)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = WideWordsToIndex([]*big.Int{new(big.Int).Lsh(big.NewInt(1), 64)}, 64)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = WideWordsToIndex([]*big.Int{nil}, 64)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = WideWordsToIndex(nil, MaxWideBitDepth+1)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)

	_, err = IndexToWideWords(big.NewInt(1), 1, 0)
	require.ErrorIs(t, err, errs.ErrUnsupportedModality)
}

func BenchmarkWordsToIndex(b *testing.B) {
	words := make([]uint32, 256)
	for i := range words {
		words[i] = uint32(i * 65537 % (1 << DefaultBitDepth))
	}
	for b.Loop() {
		_, _ = WordsToIndex(words, DefaultBitDepth)
	}
}
