package instruction

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/errs"
)

var bigOne = big.NewInt(1)

// MaxRepeatRunes caps the text a RepeatTextPattern may expand to.
const MaxRepeatRunes = 1 << 20

// Execute evaluates in and returns the index it reconstructs.
//
// Alphabet ids are resolved through registry; an empty id selects the registry default.
//
// Errors:
//   - errs.ErrInvalidInput / errs.ErrNegativeIndex: malformed or negative decimal, negative count
//   - errs.ErrUnsupportedModality: unknown alphabet id
//   - errs.ErrUnknownSymbol: text or pattern contains a rune outside the alphabet
//   - errs.ErrParse: nil instruction
func Execute(in Instruction, registry *alphabet.Registry) (*big.Int, error) {
	switch v := in.(type) {
	case LiteralBigInt:
		return codec.ParseIndex(v.Value)
	case LiteralText:
		return executeText(v.Text, v.AlphabetID, registry)
	case RepeatTextPattern:
		return executeRepeat(v, registry)
	case EvaluateAddition:
		return executeAddition(v)
	case nil:
		return nil, errs.Parsef("missing instruction")
	default:
		return nil, errs.Parsef("unsupported instruction %T", in)
	}
}

// ExecuteJSON parses a JSON instruction and evaluates it.
func ExecuteJSON(data []byte, registry *alphabet.Registry) (*big.Int, error) {
	in, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}

	return Execute(in, registry)
}

func executeText(text, alphabetID string, registry *alphabet.Registry) (*big.Int, error) {
	a, err := registry.Resolve(alphabetID)
	if err != nil {
		return nil, err
	}

	return codec.TextToIndex(text, a)
}

// executeRepeat evaluates the pattern repeated count times without expanding it.
//
// With P the pattern value, p its length and B the base, the result is the geometric sum
// P * (B^(p*count) - 1) / (B^p - 1).
func executeRepeat(v RepeatTextPattern, registry *alphabet.Registry) (*big.Int, error) {
	if v.Count < 0 {
		return nil, fmt.Errorf("%w: negative repeat count %d", errs.ErrInvalidInput, v.Count)
	}
	if v.Pattern == "" || v.Count == 0 {
		return new(big.Int), nil
	}

	patternRunes := utf8.RuneCountInString(v.Pattern)
	if v.Count > MaxRepeatRunes/patternRunes {
		return nil, fmt.Errorf("%w: repeat of %d x %d runes exceeds %d", errs.ErrInvalidInput,
			v.Count, patternRunes, MaxRepeatRunes)
	}

	a, err := registry.Resolve(v.AlphabetID)
	if err != nil {
		return nil, err
	}
	unit, err := codec.TextToIndex(v.Pattern, a)
	if err != nil {
		return nil, err
	}
	if unit.Sign() == 0 || v.Count == 1 {
		return unit, nil
	}

	step := new(big.Int).Exp(a.Base(), big.NewInt(int64(patternRunes)), nil)
	sum := new(big.Int).Exp(step, big.NewInt(int64(v.Count)), nil)
	sum.Sub(sum, bigOne)
	sum.Quo(sum, step.Sub(step, bigOne))

	return sum.Mul(sum, unit), nil
}

func executeAddition(v EvaluateAddition) (*big.Int, error) {
	a, err := parseOperand(v.Operand1)
	if err != nil {
		return nil, fmt.Errorf("operand1: %w", err)
	}
	b, err := parseOperand(v.Operand2)
	if err != nil {
		return nil, fmt.Errorf("operand2: %w", err)
	}

	return a.Add(a, b), nil
}

func parseOperand(s string) (*big.Int, error) {
	return codec.ParseIndex(s)
}
