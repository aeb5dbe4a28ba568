package instruction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
)

// wireInstruction is the interchange shape shared by the JSON and msgpack forms.
// Pointer fields distinguish a missing field from an empty value.
type wireInstruction struct {
	Type       string  `json:"type" msgpack:"type"`
	Value      *string `json:"value,omitempty" msgpack:"value,omitempty"`
	Text       *string `json:"text,omitempty" msgpack:"text,omitempty"`
	Pattern    *string `json:"pattern,omitempty" msgpack:"pattern,omitempty"`
	Count      *int    `json:"count,omitempty" msgpack:"count,omitempty"`
	AlphabetID *string `json:"alphabet_id,omitempty" msgpack:"alphabet_id,omitempty"`
	Operand1   *string `json:"operand1,omitempty" msgpack:"operand1,omitempty"`
	Operand2   *string `json:"operand2,omitempty" msgpack:"operand2,omitempty"`
}

func toWire(in Instruction) (wireInstruction, error) {
	switch v := in.(type) {
	case LiteralBigInt:
		return wireInstruction{Type: format.WireLiteralBigInt, Value: &v.Value}, nil
	case LiteralText:
		return wireInstruction{Type: format.WireLiteralText, Text: &v.Text, AlphabetID: &v.AlphabetID}, nil
	case RepeatTextPattern:
		return wireInstruction{
			Type:       format.WireRepeatTextPattern,
			Pattern:    &v.Pattern,
			Count:      &v.Count,
			AlphabetID: &v.AlphabetID,
		}, nil
	case EvaluateAddition:
		return wireInstruction{Type: format.WireEvaluateAddition, Operand1: &v.Operand1, Operand2: &v.Operand2}, nil
	default:
		return wireInstruction{}, fmt.Errorf("%w: cannot serialize %T", errs.ErrInvalidInput, in)
	}
}

// fromWire validates the shape for the discriminator: required fields must be present and
// fields of other variants must be absent.
func fromWire(w wireInstruction) (Instruction, error) {
	kind, ok := format.InstructionKindFromWire(w.Type)
	if !ok {
		if w.Type == "" {
			return nil, errs.Parsef("missing type discriminator")
		}

		return nil, errs.Parsef("unknown type discriminator %q", w.Type)
	}

	present := map[string]bool{
		"value":       w.Value != nil,
		"text":        w.Text != nil,
		"pattern":     w.Pattern != nil,
		"count":       w.Count != nil,
		"alphabet_id": w.AlphabetID != nil,
		"operand1":    w.Operand1 != nil,
		"operand2":    w.Operand2 != nil,
	}

	var required, optional []string
	switch kind {
	case format.KindLiteralBigInt:
		required = []string{"value"}
	case format.KindLiteralText:
		required, optional = []string{"text"}, []string{"alphabet_id"}
	case format.KindRepeatTextPattern:
		required, optional = []string{"pattern", "count"}, []string{"alphabet_id"}
	case format.KindEvaluateAddition:
		required = []string{"operand1", "operand2"}
	}

	for _, field := range required {
		if !present[field] {
			return nil, errs.Parsef("%s: missing field %q", w.Type, field)
		}
		delete(present, field)
	}
	for _, field := range optional {
		delete(present, field)
	}
	for field, ok := range present {
		if ok {
			return nil, errs.Parsef("%s: unexpected field %q", w.Type, field)
		}
	}

	switch kind {
	case format.KindLiteralBigInt:
		return LiteralBigInt{Value: *w.Value}, nil
	case format.KindLiteralText:
		return LiteralText{Text: *w.Text, AlphabetID: deref(w.AlphabetID)}, nil
	case format.KindRepeatTextPattern:
		return RepeatTextPattern{Pattern: *w.Pattern, Count: *w.Count, AlphabetID: deref(w.AlphabetID)}, nil
	default:
		return EvaluateAddition{Operand1: *w.Operand1, Operand2: *w.Operand2}, nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// Marshal encodes in as a JSON object with a "type" discriminator.
func Marshal(in Instruction) ([]byte, error) {
	w, err := toWire(in)
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}

// Unmarshal decodes a JSON instruction.
//
// Malformed JSON, an unknown discriminator, unknown keys, missing fields and fields that
// belong to another variant all yield *errs.ParseError.
func Unmarshal(data []byte) (Instruction, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireInstruction
	if err := dec.Decode(&w); err != nil {
		return nil, &errs.ParseError{Reason: "malformed instruction JSON", Err: err}
	}
	// anything but whitespace after the object, including a stray ']' or '}', is malformed
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.Parsef("trailing data after instruction")
	}

	return fromWire(w)
}

// MarshalMsgpack encodes in with the same field names as the JSON form.
func MarshalMsgpack(in Instruction) ([]byte, error) {
	w, err := toWire(in)
	if err != nil {
		return nil, err
	}

	return msgpack.Marshal(&w)
}

// UnmarshalMsgpack decodes an instruction produced by MarshalMsgpack.
func UnmarshalMsgpack(data []byte) (Instruction, error) {
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)

	var w wireInstruction
	if err := dec.Decode(&w); err != nil {
		return nil, &errs.ParseError{Reason: "malformed instruction msgpack", Err: err}
	}
	// bytes.Reader is read directly without buffering, so Len is what the decoder left
	if r.Len() != 0 {
		return nil, errs.Parsef("%d trailing bytes after instruction", r.Len())
	}

	return fromWire(w)
}

func (i LiteralBigInt) MarshalJSON() ([]byte, error)     { return Marshal(i) }
func (i LiteralText) MarshalJSON() ([]byte, error)       { return Marshal(i) }
func (i RepeatTextPattern) MarshalJSON() ([]byte, error) { return Marshal(i) }
func (i EvaluateAddition) MarshalJSON() ([]byte, error)  { return Marshal(i) }

// Envelope carries an Instruction through encoding/json, which cannot decode into an
// interface on its own.
type Envelope struct {
	Instruction
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Instruction == nil {
		return []byte("null"), nil
	}

	return Marshal(e.Instruction)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		e.Instruction = nil
		return nil
	}

	in, err := Unmarshal(data)
	if err != nil {
		return err
	}
	e.Instruction = in

	return nil
}

// IsParseError reports whether err came from decoding a malformed instruction.
func IsParseError(err error) bool {
	var pe *errs.ParseError
	return errors.As(err, &pe)
}
