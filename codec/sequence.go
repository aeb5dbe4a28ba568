package codec

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/arloliu/cindex/errs"
)

const (
	// MinBitDepth is the narrowest supported word width.
	MinBitDepth = 1
	// MaxWordBitDepth is the widest word width of the uint32 sequence modality.
	MaxWordBitDepth = 32
	// MaxWideBitDepth is the widest word width of the arbitrary-precision sequence modality.
	MaxWideBitDepth = 4096
	// DefaultBitDepth is the conventional 24-bit word width.
	DefaultBitDepth = 24
)

// WordBase returns 2^bitDepth, the positional base of a sequence with the given word width.
func WordBase(bitDepth int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bitDepth)) //nolint:gosec
}

// WordsToIndex decodes big-endian fixed-width words into an index.
//
// Parameters:
//   - words: Sequence of words, most significant first
//   - bitDepth: Word width in bits, in [1, 32]
//
// Returns:
//   - *big.Int: Decoded index (0 for an empty sequence)
//   - error: errs.ErrUnsupportedModality for an invalid bit depth,
//     *errs.WordOutOfRangeError (wraps errs.ErrOutOfRange) for a word >= 2^bitDepth
func WordsToIndex(words []uint32, bitDepth int) (*big.Int, error) {
	if err := checkWordBitDepth(bitDepth); err != nil {
		return nil, err
	}

	limit := uint64(1) << uint(bitDepth) //nolint:gosec

	return decode(len(words), WordBase(bitDepth), func(i int, d *big.Int) error {
		if uint64(words[i]) >= limit {
			return &errs.WordOutOfRangeError{
				Value:    strconv.FormatUint(uint64(words[i]), 10),
				BitDepth: bitDepth,
				Position: i,
			}
		}
		d.SetUint64(uint64(words[i]))

		return nil
	})
}

// IndexToWords encodes index as exactly targetLength big-endian words of bitDepth bits.
//
// Index 0 yields targetLength zero words. A targetLength of MinimalLength returns the
// minimal sequence.
//
// Returns errs.ErrOutOfRange when the index does not fit, errs.ErrUnsupportedModality for
// an invalid bit depth and errs.ErrNegativeIndex for negative indices.
func IndexToWords(index *big.Int, targetLength, bitDepth int) ([]uint32, error) {
	if err := checkWordBitDepth(bitDepth); err != nil {
		return nil, err
	}

	digits, err := encode(index, WordBase(bitDepth), targetLength)
	if err != nil {
		return nil, err
	}

	words := make([]uint32, len(digits))
	for i, d := range digits {
		words[i] = uint32(d.Uint64()) //nolint:gosec
	}

	return words, nil
}

// MinSequenceLength returns the number of bitDepth-bit words needed to represent index.
// bitDepth must be in [1, 32], matching IndexToWords.
func MinSequenceLength(index *big.Int, bitDepth int) (int, error) {
	if err := checkWordBitDepth(bitDepth); err != nil {
		return 0, err
	}

	return MinLength(index, WordBase(bitDepth))
}

// MinWideSequenceLength is MinSequenceLength for widths up to MaxWideBitDepth.
func MinWideSequenceLength(index *big.Int, bitDepth int) (int, error) {
	if err := checkWideBitDepth(bitDepth); err != nil {
		return 0, err
	}

	return MinLength(index, WordBase(bitDepth))
}

// WideWordsToIndex decodes big-endian arbitrary-precision words into an index.
//
// bitDepth may be any width in [1, MaxWideBitDepth]. Negative words and words >= 2^bitDepth
// are rejected with *errs.WordOutOfRangeError.
func WideWordsToIndex(words []*big.Int, bitDepth int) (*big.Int, error) {
	if err := checkWideBitDepth(bitDepth); err != nil {
		return nil, err
	}

	return decode(len(words), WordBase(bitDepth), func(i int, d *big.Int) error {
		w := words[i]
		if w == nil || w.Sign() < 0 || w.BitLen() > bitDepth {
			value := "nil"
			if w != nil {
				value = w.String()
			}

			return &errs.WordOutOfRangeError{Value: value, BitDepth: bitDepth, Position: i}
		}
		d.Set(w)

		return nil
	})
}

// IndexToWideWords encodes index as targetLength big-endian arbitrary-precision words.
func IndexToWideWords(index *big.Int, targetLength, bitDepth int) ([]*big.Int, error) {
	if err := checkWideBitDepth(bitDepth); err != nil {
		return nil, err
	}

	return encode(index, WordBase(bitDepth), targetLength)
}

func checkWordBitDepth(bitDepth int) error {
	if bitDepth < MinBitDepth || bitDepth > MaxWordBitDepth {
		return fmt.Errorf("%w: bit depth %d outside [%d, %d]",
			errs.ErrUnsupportedModality, bitDepth, MinBitDepth, MaxWordBitDepth)
	}

	return nil
}

func checkWideBitDepth(bitDepth int) error {
	if bitDepth < MinBitDepth || bitDepth > MaxWideBitDepth {
		return fmt.Errorf("%w: bit depth %d outside [%d, %d]",
			errs.ErrUnsupportedModality, bitDepth, MinBitDepth, MaxWideBitDepth)
	}

	return nil
}
