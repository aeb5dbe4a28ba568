package pattern

import (
	"slices"

	"github.com/arloliu/cindex/alphabet"
)

// Catalog is an ordered list of reference patterns.
type Catalog []string

// DefaultCatalog returns the built-in reference patterns. The default alphabet's raw
// definition comes first, so doubled-alphabet text resolves to it.
func DefaultCatalog() Catalog {
	return Catalog{
		alphabet.SimpleTextRaw,
		"AB",
		"ABC",
		"HELLO ",
		" ",
	}
}

// Match returns every catalog entry that text is a multiple repetition of, in catalog order.
// Empty and duplicate entries are ignored.
func (c Catalog) Match(text string) []Repeat {
	var matches []Repeat
	seen := make([]string, 0, len(c))

	for _, p := range c {
		if p == "" || slices.Contains(seen, p) {
			continue
		}
		seen = append(seen, p)

		if r, ok := MatchReference(text, p); ok {
			matches = append(matches, r)
		}
	}

	return matches
}
