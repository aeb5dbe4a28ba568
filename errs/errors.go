// Package errs defines the error taxonomy shared by all cindex packages.
//
// Every failure returned by the codec, the alphabet registry, the instruction executor and
// the analyzer wraps exactly one of the sentinel errors below, so callers can classify a
// failure with errors.Is and extract context (offending symbol, limits, ...) with errors.As.
package errs

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidInput reports a value that can never be a canonical index (negative, malformed decimal).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNegativeIndex reports a negative index. It wraps ErrInvalidInput.
	ErrNegativeIndex = fmt.Errorf("%w: negative index is not supported", ErrInvalidInput)
	// ErrUnknownSymbol reports a text symbol outside the selected alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrOutOfRange reports a word wider than its bit depth or an index too large for a length.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnsupportedModality reports an unknown alphabet id or an unsupported sequence bit depth.
	ErrUnsupportedModality = errors.New("unsupported modality")
	// ErrParse reports a malformed instruction recipe.
	ErrParse = errors.New("parse error")
	// ErrInvalidBase reports a positional base below 2.
	ErrInvalidBase = errors.New("invalid base: must be at least 2")

	// ErrDuplicateAlphabet reports a second registration of the same alphabet id.
	ErrDuplicateAlphabet = errors.New("alphabet already registered")
	// ErrInvalidRecordHeader reports a stored record whose header cannot be parsed.
	ErrInvalidRecordHeader = errors.New("invalid record header")
)

// UnknownSymbolError carries the symbol and its rune position in the decoded text.
type UnknownSymbolError struct {
	Symbol   rune
	Position int
	Alphabet string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%s: character %q (U+%04X) at position %d not in alphabet %s",
		ErrUnknownSymbol, e.Symbol, e.Symbol, e.Position, e.Alphabet)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// WordOutOfRangeError reports a sequence word that does not fit in BitDepth bits.
type WordOutOfRangeError struct {
	Value    string // decimal form, so wide words are reported exactly
	BitDepth int
	Position int
}

func (e *WordOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: word %s at position %d exceeds %d-bit range",
		ErrOutOfRange, e.Value, e.Position, e.BitDepth)
}

func (e *WordOutOfRangeError) Unwrap() error { return ErrOutOfRange }

// IndexOutOfRangeError reports an index that needs more than TargetLength digits in Base.
type IndexOutOfRangeError struct {
	Index        string
	TargetLength int
	Base         string
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %s too large for length %d in base %s",
		ErrOutOfRange, e.Index, e.TargetLength, e.Base)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrOutOfRange }

// NewIndexOutOfRange builds an IndexOutOfRangeError from big integers.
func NewIndexOutOfRange(index *big.Int, targetLength int, base *big.Int) error {
	return &IndexOutOfRangeError{
		Index:        index.String(),
		TargetLength: targetLength,
		Base:         base.String(),
	}
}

// ParseError reports a malformed instruction.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParse, e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}

	return []error{ErrParse}
}

// Parsef builds a ParseError with a formatted reason.
func Parsef(format string, args ...any) error {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}
