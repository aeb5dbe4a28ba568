package codec

import (
	"errors"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/errs"
	"github.com/stretchr/testify/require"
)

func simpleText(t testing.TB) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.NewDefaultRegistry().Get(alphabet.SimpleTextID)
	require.NoError(t, err)

	return a
}

func TestTextToIndex(t *testing.T) {
	a := simpleText(t)

	tests := []struct {
		name  string
		text  string
		index int64
	}{
		{"empty", "", 0},
		{"zero symbol", " ", 0},
		{"leading zeros ignored", "   A", 1},
		{"single", "A", 1},
		{"two symbols", "AB", 29},
		{"lower case folds", "ab", 29},
		{"hello", "HELLO", 4359030},
		{"repeating", "ABABAB", 15432959},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextToIndex(tt.text, a)
			require.NoError(t, err)
			require.Equal(t, tt.index, got.Int64())
		})
	}
}

func TestTextToIndex_UnknownSymbol(t *testing.T) {
	a := simpleText(t)

	_, err := TextToIndex("AB1C", a)
	require.ErrorIs(t, err, errs.ErrUnknownSymbol)

	var symErr *errs.UnknownSymbolError
	require.True(t, errors.As(err, &symErr))
	require.Equal(t, '1', symErr.Symbol)
	require.Equal(t, 2, symErr.Position)
	require.Equal(t, alphabet.SimpleTextID, symErr.Alphabet)
}

func TestTextToIndex_RunePositions(t *testing.T) {
	a := simpleText(t)

	// position counts runes, not bytes
	_, err := TextToIndex("ÉA€", a)
	var symErr *errs.UnknownSymbolError
	require.True(t, errors.As(err, &symErr))
	require.Equal(t, 0, symErr.Position)

	_, err = TextToIndex("AÉ", a)
	require.True(t, errors.As(err, &symErr))
	require.Equal(t, 1, symErr.Position)
}

func TestIndexToText(t *testing.T) {
	a := simpleText(t)

	text, err := IndexToText(big.NewInt(29), a, MinimalLength)
	require.NoError(t, err)
	require.Equal(t, "AB", text)

	text, err = IndexToText(big.NewInt(29), a, 4)
	require.NoError(t, err)
	require.Equal(t, "  AB", text)

	text, err = IndexToText(big.NewInt(0), a, 1)
	require.NoError(t, err)
	require.Equal(t, " ", text)

	text, err = IndexToText(big.NewInt(0), a, 0)
	require.NoError(t, err)
	require.Empty(t, text)

	text, err = IndexToText(big.NewInt(0), a, MinimalLength)
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestIndexToText_OutOfRange(t *testing.T) {
	a := simpleText(t)

	_, err := IndexToText(big.NewInt(29), a, 1)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	var rangeErr *errs.IndexOutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Equal(t, "29", rangeErr.Index)
	require.Equal(t, 1, rangeErr.TargetLength)
	require.Equal(t, "27", rangeErr.Base)

	_, err = IndexToText(big.NewInt(1), a, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestIndexToText_Negative(t *testing.T) {
	a := simpleText(t)

	_, err := IndexToText(big.NewInt(-1), a, MinimalLength)
	require.ErrorIs(t, err, errs.ErrNegativeIndex)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = IndexToMinimalText(big.NewInt(-5), a)
	require.ErrorIs(t, err, errs.ErrNegativeIndex)
}

func TestIndexToMinimalText(t *testing.T) {
	a := simpleText(t)

	text, err := IndexToMinimalText(big.NewInt(0), a)
	require.NoError(t, err)
	require.Equal(t, " ", text)

	text, err = IndexToMinimalText(big.NewInt(4359030), a)
	require.NoError(t, err)
	require.Equal(t, "HELLO", text)
}

func TestText_CaseIsLossy(t *testing.T) {
	a := simpleText(t)

	index, err := TextToIndex("Hello World", a)
	require.NoError(t, err)

	text, err := IndexToMinimalText(index, a)
	require.NoError(t, err)
	require.Equal(t, "HELLO WORLD", text)
}

func TestText_RoundTrip(t *testing.T) {
	reg := alphabet.NewDefaultRegistry()
	rnd := rand.New(rand.NewSource(42))

	for _, id := range reg.IDs() {
		a, err := reg.Get(id)
		require.NoError(t, err)

		t.Run(id, func(t *testing.T) {
			for range 200 {
				index := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), uint(rnd.Intn(300)+1)))

				minLen, err := MinTextLength(index, a)
				require.NoError(t, err)

				text, err := IndexToText(index, a, minLen)
				require.NoError(t, err)
				require.Equal(t, minLen, len([]rune(text)))

				back, err := TextToIndex(text, a)
				require.NoError(t, err)
				require.Zero(t, index.Cmp(back), "index %s text %q", index, text)

				// padded form decodes to the same index
				padded, err := IndexToText(index, a, minLen+3)
				require.NoError(t, err)
				back, err = TextToIndex(padded, a)
				require.NoError(t, err)
				require.Zero(t, index.Cmp(back))

				if minLen > 0 {
					_, err = IndexToText(index, a, minLen-1)
					require.ErrorIs(t, err, errs.ErrOutOfRange)
				}
			}
		})
	}
}

func TestText_DoubledAlphabet(t *testing.T) {
	a := simpleText(t)
	doubled := strings.Repeat(alphabet.SimpleTextRaw, 2)

	index, err := TextToIndex(doubled, a)
	require.NoError(t, err)

	text, err := IndexToMinimalText(index, a)
	require.NoError(t, err)
	require.Equal(t, doubled, text)
}

func BenchmarkTextToIndex(b *testing.B) {
	a := simpleText(b)
	text := strings.Repeat("THE QUICK BROWN FOX ", 20)
	for b.Loop() {
		_, _ = TextToIndex(text, a)
	}
}

func BenchmarkIndexToMinimalText(b *testing.B) {
	a := simpleText(b)
	index, _ := TextToIndex(strings.Repeat("THE QUICK BROWN FOX ", 20), a)
	for b.Loop() {
		_, _ = IndexToMinimalText(index, a)
	}
}
