// Package cindex holds a single arbitrary-precision nonnegative integer, the canonical
// index, and converts it to and from other representations.
//
// # Core Features
//
//   - Lossless conversion between the index and text over a custom alphabet
//   - Lossless conversion between the index and fixed-width word sequences (1 to 4096 bits)
//   - A four-recipe instruction language that reconstructs an index
//   - A lens analyzer that searches reconstruction strategies and recommends the cheapest
//   - Persistence of recommended instructions in memory or Badger
//
// # Basic Usage
//
//	h, _ := cindex.New()
//
//	// Decode text over the default alphabet (space = 0, A = 1, ..., Z = 26)
//	_ = h.SetText("ABABAB")
//	fmt.Println(h.IndexString()) // 15432959
//
//	// Ask the analyzer for the cheapest recipe
//	report, _ := h.Analyze()
//	fmt.Println(report.Recommended) // REPEAT_TEXT_PATTERN_TO_CI("AB" x 3, SIMPLE_TEXT_A_Z_SPACE)
//
//	// Replay a recipe received as JSON
//	_, _ = h.ExecuteJSON([]byte(`{"type":"LITERAL_BIGINT","value":"200"}`))
//
// # Package Structure
//
// Handle is a thin stateful wrapper. The conversions live in codec, the alphabets in
// alphabet, the recipes in instruction, the search in analyzer and persistence in store.
// Use those packages directly for stateless work.
package cindex

import (
	"math/big"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/instruction"
)

// NewAnalyzer creates a lens analyzer over the built-in alphabets.
//
// Example:
//
//	an, err := cindex.NewAnalyzer(
//	    analyzer.WithCostModel(instruction.JSONCost{}),
//	    analyzer.WithAdditiveIterations(100),
//	)
func NewAnalyzer(opts ...analyzer.Option) (*analyzer.Analyzer, error) {
	return analyzer.New(alphabet.NewDefaultRegistry(), opts...)
}

// ParseIndex parses a nonnegative decimal index.
func ParseIndex(s string) (*big.Int, error) {
	return codec.ParseIndex(s)
}

// ExecuteJSON runs a JSON recipe against the built-in alphabets without a handle.
func ExecuteJSON(recipe []byte) (*big.Int, error) {
	return instruction.ExecuteJSON(recipe, alphabet.NewDefaultRegistry())
}
