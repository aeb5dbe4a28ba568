// Package instruction defines the compact recipes that reconstruct a canonical index.
//
// An Instruction is a closed sum type with exactly four variants:
//
//	LiteralBigInt      the index as a decimal string
//	LiteralText        text decoded over an alphabet
//	RepeatTextPattern  a pattern repeated count times, decoded over an alphabet
//	EvaluateAddition   the sum of two decimal operands
//
// Execute evaluates an instruction against an alphabet registry. Instructions travel as
// JSON (the interchange format, with a "type" discriminator), as msgpack (storage) or
// as a compact binary form that the default cost model measures.
package instruction

import (
	"fmt"
	"math/big"

	"github.com/arloliu/cindex/format"
)

// Instruction is implemented only by the four variants in this package.
type Instruction interface {
	// Kind returns the variant discriminator.
	Kind() format.InstructionKind
	fmt.Stringer

	sealed()
}

var (
	_ Instruction = LiteralBigInt{}
	_ Instruction = LiteralText{}
	_ Instruction = RepeatTextPattern{}
	_ Instruction = EvaluateAddition{}
)

// LiteralBigInt reconstructs the index from its decimal representation.
type LiteralBigInt struct {
	Value string
}

// LiteralText reconstructs the index by decoding Text over an alphabet.
// An empty AlphabetID selects the registry default.
type LiteralText struct {
	Text       string
	AlphabetID string
}

// RepeatTextPattern reconstructs the index by decoding Pattern repeated Count times.
// An empty Pattern or a zero Count yields index 0.
type RepeatTextPattern struct {
	Pattern    string
	Count      int
	AlphabetID string
}

// EvaluateAddition reconstructs the index as Operand1 + Operand2 (decimal strings).
type EvaluateAddition struct {
	Operand1 string
	Operand2 string
}

// Literal returns a LiteralBigInt for index.
func Literal(index *big.Int) LiteralBigInt {
	return LiteralBigInt{Value: index.String()}
}

// Text returns a LiteralText.
func Text(text, alphabetID string) LiteralText {
	return LiteralText{Text: text, AlphabetID: alphabetID}
}

// Repeat returns a RepeatTextPattern.
func Repeat(pattern string, count int, alphabetID string) RepeatTextPattern {
	return RepeatTextPattern{Pattern: pattern, Count: count, AlphabetID: alphabetID}
}

// Addition returns an EvaluateAddition of a and b.
func Addition(a, b *big.Int) EvaluateAddition {
	return EvaluateAddition{Operand1: a.String(), Operand2: b.String()}
}

func (LiteralBigInt) Kind() format.InstructionKind     { return format.KindLiteralBigInt }
func (LiteralText) Kind() format.InstructionKind       { return format.KindLiteralText }
func (RepeatTextPattern) Kind() format.InstructionKind { return format.KindRepeatTextPattern }
func (EvaluateAddition) Kind() format.InstructionKind  { return format.KindEvaluateAddition }

func (LiteralBigInt) sealed()     {}
func (LiteralText) sealed()       {}
func (RepeatTextPattern) sealed() {}
func (EvaluateAddition) sealed()  {}

func (i LiteralBigInt) String() string {
	return fmt.Sprintf("%s(%s)", i.Kind(), i.Value)
}

func (i LiteralText) String() string {
	return fmt.Sprintf("%s(%q, %s)", i.Kind(), i.Text, i.AlphabetID)
}

func (i RepeatTextPattern) String() string {
	return fmt.Sprintf("%s(%q x %d, %s)", i.Kind(), i.Pattern, i.Count, i.AlphabetID)
}

func (i EvaluateAddition) String() string {
	return fmt.Sprintf("%s(%s + %s)", i.Kind(), i.Operand1, i.Operand2)
}

// Equal reports whether a and b are the same variant with identical fields.
func Equal(a, b Instruction) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// all variants are comparable structs
	return a == b
}
