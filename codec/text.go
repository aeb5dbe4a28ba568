package codec

import (
	"math/big"
	"strings"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/errs"
)

// TextToIndex decodes text over the alphabet into an index.
//
// Each rune is a big-endian digit. Case-folding alphabets accept either case. The empty
// text decodes to 0.
//
// Returns:
//   - *big.Int: Decoded index
//   - error: *errs.UnknownSymbolError (wraps errs.ErrUnknownSymbol) for a rune outside the alphabet
func TextToIndex(text string, a *alphabet.Alphabet) (*big.Int, error) {
	runes := []rune(text)

	return decode(len(runes), a.Base(), func(i int, d *big.Int) error {
		v, ok := a.Value(runes[i])
		if !ok {
			return &errs.UnknownSymbolError{Symbol: runes[i], Position: i, Alphabet: a.ID()}
		}
		d.SetInt64(int64(v))

		return nil
	})
}

// IndexToText encodes index as text over the alphabet.
//
// targetLength left-pads with the alphabet's zero symbol; MinimalLength returns the
// shortest text, which is empty for index 0 (see IndexToMinimalText for the non-empty form).
//
// Returns errs.ErrOutOfRange when the index needs more than targetLength symbols and
// errs.ErrNegativeIndex for negative indices.
func IndexToText(index *big.Int, a *alphabet.Alphabet, targetLength int) (string, error) {
	digits, err := encode(index, a.Base(), targetLength)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(digits))
	for _, d := range digits {
		// digits are < base, and base is the symbol count
		r, _ := a.Symbol(int(d.Int64()))
		sb.WriteRune(r)
	}

	return sb.String(), nil
}

// IndexToMinimalText encodes index with the fewest symbols, but never returns an empty
// string: index 0 becomes a single zero symbol.
func IndexToMinimalText(index *big.Int, a *alphabet.Alphabet) (string, error) {
	if err := CheckIndex(index); err != nil {
		return "", err
	}
	if index.Sign() == 0 {
		return string(a.Zero()), nil
	}

	return IndexToText(index, a, MinimalLength)
}

// MinTextLength returns the number of symbols needed to represent index over the alphabet.
func MinTextLength(index *big.Int, a *alphabet.Alphabet) (int, error) {
	return MinLength(index, a.Base())
}
