package instruction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/errs"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want string
	}{
		{
			"literal",
			LiteralBigInt{Value: "200"},
			`{"type":"LITERAL_BIGINT","value":"200"}`,
		},
		{
			"text",
			Text("GK", alphabet.SimpleTextID),
			`{"type":"LITERAL_TEXT_TO_CI","text":"GK","alphabet_id":"SIMPLE_TEXT_A_Z_SPACE"}`,
		},
		{
			"empty text keeps field",
			Text("", ""),
			`{"type":"LITERAL_TEXT_TO_CI","text":"","alphabet_id":""}`,
		},
		{
			"repeat",
			Repeat("AB", 3, alphabet.SimpleTextID),
			`{"type":"REPEAT_TEXT_PATTERN_TO_CI","pattern":"AB","count":3,"alphabet_id":"SIMPLE_TEXT_A_Z_SPACE"}`,
		},
		{
			"addition",
			EvaluateAddition{Operand1: "1", Operand2: "199"},
			`{"type":"EVALUATE_ADDITION","operand1":"1","operand2":"199"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.in)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(data))

			// the variant's own MarshalJSON produces the same object
			direct, err := json.Marshal(tt.in)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(direct))

			back, err := Unmarshal(data)
			require.NoError(t, err)
			require.True(t, Equal(tt.in, back), "got %v", back)
		})
	}
}

func TestMarshal_Nil(t *testing.T) {
	_, err := Marshal(nil)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestUnmarshal_OptionalAlphabet(t *testing.T) {
	in, err := Unmarshal([]byte(`{"type":"LITERAL_TEXT_TO_CI","text":"HI"}`))
	require.NoError(t, err)
	require.Equal(t, Text("HI", ""), in)
}

func TestUnmarshal_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `LITERAL_BIGINT 5`},
		{"array", `["LITERAL_BIGINT","5"]`},
		{"missing type", `{"value":"5"}`},
		{"unknown type", `{"type":"MULTIPLY","operand1":"2","operand2":"3"}`},
		{"lowercase type", `{"type":"literal_bigint","value":"5"}`},
		{"missing value", `{"type":"LITERAL_BIGINT"}`},
		{"numeric value", `{"type":"LITERAL_BIGINT","value":5}`},
		{"missing text", `{"type":"LITERAL_TEXT_TO_CI","alphabet_id":"X"}`},
		{"missing count", `{"type":"REPEAT_TEXT_PATTERN_TO_CI","pattern":"AB"}`},
		{"string count", `{"type":"REPEAT_TEXT_PATTERN_TO_CI","pattern":"AB","count":"3"}`},
		{"fractional count", `{"type":"REPEAT_TEXT_PATTERN_TO_CI","pattern":"AB","count":1.5}`},
		{"missing operand", `{"type":"EVALUATE_ADDITION","operand1":"1"}`},
		{"foreign field", `{"type":"LITERAL_BIGINT","value":"5","text":"AB"}`},
		{"unknown field", `{"type":"LITERAL_BIGINT","value":"5","extra":true}`},
		{"trailing object", `{"type":"LITERAL_BIGINT","value":"5"}{"type":"LITERAL_BIGINT","value":"6"}`},
		{"stray bracket", `{"type":"LITERAL_BIGINT","value":"1"}]`},
		{"stray brace", `{"type":"LITERAL_BIGINT","value":"1"}}`},
		{"trailing scalar", `{"type":"LITERAL_BIGINT","value":"1"} 7`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Unmarshal([]byte(tt.data))
			require.ErrorIs(t, err, errs.ErrParse)
			require.True(t, IsParseError(err))
			require.Nil(t, in)
		})
	}
}

func TestMsgpack_RoundTrip(t *testing.T) {
	for _, in := range []Instruction{
		LiteralBigInt{Value: "98765432109876543210"},
		Text("HELLO", alphabet.SimpleTextID),
		Repeat("AB", 300, ""),
		EvaluateAddition{Operand1: "3", Operand2: "4"},
	} {
		data, err := MarshalMsgpack(in)
		require.NoError(t, err)

		back, err := UnmarshalMsgpack(data)
		require.NoError(t, err)
		require.True(t, Equal(in, back), "%v != %v", in, back)
	}

	_, err := UnmarshalMsgpack([]byte{0xc1})
	require.ErrorIs(t, err, errs.ErrParse)

	data, err := MarshalMsgpack(LiteralBigInt{Value: "1"})
	require.NoError(t, err)
	for _, tail := range [][]byte{{0x00}, {0xc0}, data} {
		in, err := UnmarshalMsgpack(append(append([]byte{}, data...), tail...))
		require.ErrorIs(t, err, errs.ErrParse, "tail % x", tail)
		require.Nil(t, in)
	}
}

func TestEnvelope(t *testing.T) {
	type holder struct {
		Recommended Envelope `json:"recommended"`
	}

	data, err := json.Marshal(holder{Recommended: Envelope{Repeat("AB", 3, "")}})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"recommended":{"type":"REPEAT_TEXT_PATTERN_TO_CI","pattern":"AB","count":3,"alphabet_id":""}}`,
		string(data))

	var back holder
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, Repeat("AB", 3, ""), back.Recommended.Instruction)

	require.NoError(t, json.Unmarshal([]byte(`{"recommended":null}`), &back))
	require.Nil(t, back.Recommended.Instruction)

	data, err = json.Marshal(holder{})
	require.NoError(t, err)
	require.JSONEq(t, `{"recommended":null}`, string(data))

	err = json.Unmarshal([]byte(`{"recommended":{"type":"NOPE"}}`), &back)
	require.ErrorIs(t, err, errs.ErrParse)
}
