// Package pattern detects repetition in encoded text.
//
// Two detectors are provided: FindMinimalPeriod searches for the shortest period of a
// string, and MatchReference checks a string against one fixed reference pattern. Both
// work on runes and report only true repetitions (count > 1).
//
// FindMinimalPeriod is O(n²) in the text length. Since text length grows with the
// logarithm of the index, this stays cheap for any index that fits in memory.
package pattern

import (
	"slices"
	"strings"
)

// Repeat describes text that equals Pattern concatenated Count times.
type Repeat struct {
	Pattern string
	Count   int
}

// Text rebuilds the repeated text.
func (r Repeat) Text() string {
	if r.Count <= 0 {
		return ""
	}

	return strings.Repeat(r.Pattern, r.Count)
}

// FindMinimalPeriod returns the smallest pattern whose repetition equals text.
//
// Candidate periods p run from 1 to len/2 (in runes); a period qualifies when it divides
// the length and text is its first p runes repeated len/p times. A text that only matches
// itself (count 1) is not reported.
//
// Returns:
//   - Repeat: The pattern and its count (count >= 2)
//   - bool: false when text has no proper period
func FindMinimalPeriod(text string) (Repeat, bool) {
	runes := []rune(text)
	n := len(runes)

	for p := 1; p <= n/2; p++ {
		if n%p != 0 {
			continue
		}
		if hasPeriod(runes, p) {
			return Repeat{Pattern: string(runes[:p]), Count: n / p}, true
		}
	}

	return Repeat{}, false
}

// MatchReference reports whether text is an exact multiple repetition of pattern.
//
// The text length must be divisible by the pattern length, the rebuilt repetition must
// equal text, and the multiplicity must be greater than one.
func MatchReference(text, pattern string) (Repeat, bool) {
	textRunes := []rune(text)
	patternRunes := []rune(pattern)
	if len(patternRunes) == 0 || len(textRunes)%len(patternRunes) != 0 {
		return Repeat{}, false
	}

	count := len(textRunes) / len(patternRunes)
	if count <= 1 {
		return Repeat{}, false
	}

	for i := 0; i < len(textRunes); i += len(patternRunes) {
		if !slices.Equal(textRunes[i:i+len(patternRunes)], patternRunes) {
			return Repeat{}, false
		}
	}

	return Repeat{Pattern: pattern, Count: count}, true
}

// hasPeriod reports whether runes[i] == runes[i-p] for every i >= p.
func hasPeriod(runes []rune, p int) bool {
	for i := p; i < len(runes); i++ {
		if runes[i] != runes[i-p] {
			return false
		}
	}

	return true
}
