package alphabet

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
	"unicode"

	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/internal/hash"
)

// Alphabet is an ordered, deduplicated symbol table used as a positional numeral system.
//
// Symbol values are assigned in ascending rune order: the smallest rune is the zero
// symbol, the largest rune has value Base()-1. An Alphabet is immutable after New returns
// and is safe for concurrent use.
//
// When case folding is enabled, the alphabet stores its symbols in upper case and Value
// upper-cases its input before lookup. Decoding "ab" and "AB" therefore yields the same
// value, and encoding always produces upper case. This is a lossy property of case.
type Alphabet struct {
	id          string
	raw         string
	symbols     []rune
	values      map[rune]int
	foldCase    bool
	base        *big.Int
	fingerprint uint64
}

// New builds an alphabet from a raw symbol definition.
//
// The raw string is split into runes, optionally upper-cased (foldCase), sorted and
// deduplicated. The resulting base must be at least 2.
//
// Parameters:
//   - id: Identifier used by instructions to reference the alphabet
//   - raw: Raw symbol definition, in any order and possibly with duplicates
//   - foldCase: Whether decoding is case-insensitive
//
// Returns:
//   - *Alphabet: The built alphabet
//   - error: errs.ErrInvalidInput for an empty id, errs.ErrInvalidBase for fewer than 2 symbols
func New(id, raw string, foldCase bool) (*Alphabet, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty alphabet id", errs.ErrInvalidInput)
	}

	source := raw
	if foldCase {
		source = strings.ToUpper(raw)
	}

	symbols := []rune(source)
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)

	if len(symbols) < 2 {
		return nil, fmt.Errorf("alphabet %s has %d symbols: %w", id, len(symbols), errs.ErrInvalidBase)
	}

	values := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		values[r] = i
	}

	return &Alphabet{
		id:          id,
		raw:         raw,
		symbols:     symbols,
		values:      values,
		foldCase:    foldCase,
		base:        big.NewInt(int64(len(symbols))),
		fingerprint: hash.Runes(symbols),
	}, nil
}

// MustNew is like New but panics on error. It is intended for package-level built-ins.
func MustNew(id, raw string, foldCase bool) *Alphabet {
	a, err := New(id, raw, foldCase)
	if err != nil {
		panic(err)
	}

	return a
}

// ID returns the alphabet identifier.
func (a *Alphabet) ID() string { return a.id }

// Raw returns the raw symbol definition the alphabet was built from.
func (a *Alphabet) Raw() string { return a.raw }

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Base returns the positional base as a big integer. The returned value must not be modified.
func (a *Alphabet) Base() *big.Int { return a.base }

// Symbols returns a copy of the sorted symbol table.
func (a *Alphabet) Symbols() []rune { return slices.Clone(a.symbols) }

// FoldsCase reports whether decoding is case-insensitive.
func (a *Alphabet) FoldsCase() bool { return a.foldCase }

// Fingerprint returns the xxHash64 of the sorted symbol table.
// Two alphabets with equal fingerprints encode every index identically (barring collisions).
func (a *Alphabet) Fingerprint() uint64 { return a.fingerprint }

// Zero returns the zero symbol, used for left padding.
func (a *Alphabet) Zero() rune { return a.symbols[0] }

// Value returns the digit value of r.
func (a *Alphabet) Value(r rune) (int, bool) {
	if a.foldCase {
		r = unicode.ToUpper(r)
	}
	v, ok := a.values[r]

	return v, ok
}

// Symbol returns the symbol for digit value v.
func (a *Alphabet) Symbol(v int) (rune, bool) {
	if v < 0 || v >= len(a.symbols) {
		return 0, false
	}

	return a.symbols[v], true
}

// Canonical returns text in the case the alphabet encodes to.
func (a *Alphabet) Canonical(text string) string {
	if a.foldCase {
		return strings.ToUpper(text)
	}

	return text
}

func (a *Alphabet) String() string {
	return fmt.Sprintf("Alphabet{ID: %s, Base: %d, FoldCase: %t}", a.id, len(a.symbols), a.foldCase)
}
