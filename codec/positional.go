package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arloliu/cindex/errs"
)

var bigTwo = big.NewInt(2)

// MinimalLength asks an encoder for the shortest digit string that represents the index.
const MinimalLength = -1

// digitFunc stores the value of the unit at position i into d.
type digitFunc func(i int, d *big.Int) error

// decode evaluates n big-endian units with Horner's method:
//
//	index = 0; for each unit left-to-right: index = index*base + value(unit)
//
// The digit callback is responsible for rejecting units whose value is >= base.
func decode(n int, base *big.Int, digit digitFunc) (*big.Int, error) {
	index := new(big.Int)
	d := new(big.Int)

	for i := range n {
		if err := digit(i, d); err != nil {
			return nil, err
		}
		index.Mul(index, base)
		index.Add(index, d)
	}

	return index, nil
}

// encode returns the big-endian digits of index in base.
//
// A nonnegative targetLength left-pads the result with zero digits and fails with
// errs.ErrOutOfRange when the index needs more digits. MinimalLength (any negative
// value) returns the minimal digit string, which is empty for index 0.
func encode(index, base *big.Int, targetLength int) ([]*big.Int, error) {
	if err := CheckIndex(index); err != nil {
		return nil, err
	}
	if err := checkBase(base); err != nil {
		return nil, err
	}

	if index.Sign() == 0 {
		digits := make([]*big.Int, max(targetLength, 0))
		for i := range digits {
			digits[i] = new(big.Int)
		}

		return digits, nil
	}

	// least-significant digit first
	lsdFirst := make([]*big.Int, 0, max(targetLength, 8))
	q := new(big.Int).Set(index)
	for q.Sign() > 0 {
		if targetLength >= 0 && len(lsdFirst) == targetLength {
			return nil, errs.NewIndexOutOfRange(index, targetLength, base)
		}
		r := new(big.Int)
		q.QuoRem(q, base, r)
		lsdFirst = append(lsdFirst, r)
	}

	for len(lsdFirst) < targetLength {
		lsdFirst = append(lsdFirst, new(big.Int))
	}

	digits := make([]*big.Int, len(lsdFirst))
	for i, d := range lsdFirst {
		digits[len(lsdFirst)-1-i] = d
	}

	return digits, nil
}

// MinLength returns the number of base-`base` digits needed to represent index.
//
// It is 0 for index 0. A base below 2 yields errs.ErrInvalidBase instead of looping forever.
//
// Parameters:
//   - index: Nonnegative index
//   - base: Positional base (>= 2)
//
// Returns:
//   - int: Minimal digit count
//   - error: errs.ErrNegativeIndex or errs.ErrInvalidBase
func MinLength(index, base *big.Int) (int, error) {
	if err := CheckIndex(index); err != nil {
		return 0, err
	}
	if err := checkBase(base); err != nil {
		return 0, err
	}

	if index.Sign() == 0 {
		return 0, nil
	}

	// power-of-two bases reduce to a bit count
	if bits := powerOfTwoExponent(base); bits > 0 {
		return (index.BitLen() + bits - 1) / bits, nil
	}

	length := 0
	q := new(big.Int).Set(index)
	for q.Sign() > 0 {
		q.Quo(q, base)
		length++
	}

	return length, nil
}

// CheckIndex rejects nil and negative indices.
func CheckIndex(index *big.Int) error {
	if index == nil {
		return fmt.Errorf("%w: nil index", errs.ErrInvalidInput)
	}
	if index.Sign() < 0 {
		return errs.ErrNegativeIndex
	}

	return nil
}

// ParseIndex parses an unsigned decimal string into an index.
//
// Only ASCII digits are accepted. Returns errs.ErrNegativeIndex for a negative value such
// as "-1" and errs.ErrInvalidInput for anything else that is not plain digits, including
// "+7" and "-0".
func ParseIndex(s string) (*big.Int, error) {
	digits, negative := strings.CutPrefix(s, "-")
	if !isDecimal(digits) {
		return nil, fmt.Errorf("%w: malformed decimal %q", errs.ErrInvalidInput, s)
	}
	index, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: malformed decimal %q", errs.ErrInvalidInput, s)
	}
	if negative {
		if index.Sign() == 0 {
			return nil, fmt.Errorf("%w: signed zero %q", errs.ErrInvalidInput, s)
		}

		return nil, fmt.Errorf("%w: %s", errs.ErrNegativeIndex, s)
	}

	return index, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func checkBase(base *big.Int) error {
	if base == nil || base.Cmp(bigTwo) < 0 {
		return errs.ErrInvalidBase
	}

	return nil
}

// powerOfTwoExponent returns k when base == 2^k, or 0 otherwise.
func powerOfTwoExponent(base *big.Int) int {
	bits := base.BitLen() - 1
	if bits <= 0 || base.TrailingZeroBits() != uint(bits) {
		return 0
	}

	return bits
}
