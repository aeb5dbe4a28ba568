package format

import "strings"

type (
	InstructionKind uint8
	CompressionType uint8
	ModalityType    uint8
)

const (
	KindLiteralBigInt     InstructionKind = 0x1 // KindLiteralBigInt represents a decimal literal.
	KindLiteralText       InstructionKind = 0x2 // KindLiteralText represents a text literal over an alphabet.
	KindRepeatTextPattern InstructionKind = 0x3 // KindRepeatTextPattern represents a repeated text pattern.
	KindEvaluateAddition  InstructionKind = 0x4 // KindEvaluateAddition represents the sum of two decimal operands.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ModalityText         ModalityType = 0x1 // ModalityText represents custom-alphabet text.
	ModalitySequence     ModalityType = 0x2 // ModalitySequence represents word-sized fixed-width sequences.
	ModalityWideSequence ModalityType = 0x3 // ModalityWideSequence represents arbitrary-width sequences.
)

// Wire discriminators. These strings are part of the interchange format.
const (
	WireLiteralBigInt     = "LITERAL_BIGINT"
	WireLiteralText       = "LITERAL_TEXT_TO_CI"
	WireRepeatTextPattern = "REPEAT_TEXT_PATTERN_TO_CI"
	WireEvaluateAddition  = "EVALUATE_ADDITION"
)

// String returns the wire discriminator of the instruction kind.
func (k InstructionKind) String() string {
	switch k {
	case KindLiteralBigInt:
		return WireLiteralBigInt
	case KindLiteralText:
		return WireLiteralText
	case KindRepeatTextPattern:
		return WireRepeatTextPattern
	case KindEvaluateAddition:
		return WireEvaluateAddition
	default:
		return "Unknown"
	}
}

// InstructionKindFromWire maps a wire discriminator to its kind.
// The second result is false for unknown discriminators.
func InstructionKindFromWire(s string) (InstructionKind, bool) {
	switch s {
	case WireLiteralBigInt:
		return KindLiteralBigInt, true
	case WireLiteralText:
		return KindLiteralText, true
	case WireRepeatTextPattern:
		return KindRepeatTextPattern, true
	case WireEvaluateAddition:
		return KindEvaluateAddition, true
	default:
		return 0, false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CompressionTypeFromString parses a compression name as printed by String, ignoring case.
func CompressionTypeFromString(s string) (CompressionType, bool) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}

	return 0, false
}

func (m ModalityType) String() string {
	switch m {
	case ModalityText:
		return "Text"
	case ModalitySequence:
		return "Sequence"
	case ModalityWideSequence:
		return "WideSequence"
	default:
		return "Unknown"
	}
}
