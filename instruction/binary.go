package instruction

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
)

// Compact binary layout:
//
//	opcode (1 byte, format.InstructionKind)
//	LiteralBigInt:      str(value)
//	LiteralText:        str(text) str(alphabet_id)
//	RepeatTextPattern:  str(pattern) uvarint(count) str(alphabet_id)
//	EvaluateAddition:   str(operand1) str(operand2)
//
// where str(s) is uvarint(len(s)) followed by the UTF-8 bytes. An alphabet id equal to
// the caller's default is written as the empty string.

// AppendBinary appends the compact binary form of in to dst.
func AppendBinary(dst []byte, in Instruction, defaultAlphabetID string) ([]byte, error) {
	switch v := in.(type) {
	case LiteralBigInt:
		dst = append(dst, byte(format.KindLiteralBigInt))
		dst = appendString(dst, v.Value)
	case LiteralText:
		dst = append(dst, byte(format.KindLiteralText))
		dst = appendString(dst, v.Text)
		dst = appendString(dst, elide(v.AlphabetID, defaultAlphabetID))
	case RepeatTextPattern:
		if v.Count < 0 {
			return dst, fmt.Errorf("%w: negative repeat count %d", errs.ErrInvalidInput, v.Count)
		}
		dst = append(dst, byte(format.KindRepeatTextPattern))
		dst = appendString(dst, v.Pattern)
		dst = binary.AppendUvarint(dst, uint64(v.Count))
		dst = appendString(dst, elide(v.AlphabetID, defaultAlphabetID))
	case EvaluateAddition:
		dst = append(dst, byte(format.KindEvaluateAddition))
		dst = appendString(dst, v.Operand1)
		dst = appendString(dst, v.Operand2)
	default:
		return dst, fmt.Errorf("%w: cannot serialize %T", errs.ErrInvalidInput, in)
	}

	return dst, nil
}

// DecodeBinary parses the compact binary form. Elided alphabet ids decode as "".
func DecodeBinary(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errs.Parsef("empty binary instruction")
	}

	r := binaryReader{buf: data[1:]}
	var in Instruction

	switch kind := format.InstructionKind(data[0]); kind {
	case format.KindLiteralBigInt:
		in = LiteralBigInt{Value: r.string()}
	case format.KindLiteralText:
		text := r.string()
		in = LiteralText{Text: text, AlphabetID: r.string()}
	case format.KindRepeatTextPattern:
		pattern := r.string()
		count := r.uvarint()
		if r.err == nil && count > uint64(MaxRepeatRunes) {
			return nil, errs.Parsef("repeat count %d too large", count)
		}
		in = RepeatTextPattern{Pattern: pattern, Count: int(count), AlphabetID: r.string()}
	case format.KindEvaluateAddition:
		op1 := r.string()
		in = EvaluateAddition{Operand1: op1, Operand2: r.string()}
	default:
		return nil, errs.Parsef("unknown opcode 0x%02x", data[0])
	}

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, errs.Parsef("%d trailing bytes after instruction", len(r.buf))
	}

	return in, nil
}

func elide(id, defaultID string) string {
	if id == defaultID {
		return ""
	}

	return id
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// binaryReader keeps the first error and turns later reads into no-ops.
type binaryReader struct {
	buf []byte
	err error
}

func (r *binaryReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.err = errs.Parsef("truncated varint")
		return 0
	}
	r.buf = r.buf[n:]

	return v
}

func (r *binaryReader) string() string {
	n := r.uvarint()
	if r.err != nil {
		return ""
	}
	if n > uint64(len(r.buf)) {
		r.err = errs.Parsef("string length %d exceeds remaining %d bytes", n, len(r.buf))
		return ""
	}

	s := string(r.buf[:n])
	r.buf = r.buf[n:]

	return s
}
