package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cindex/endian"
	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestRecord_RoundTrip(t *testing.T) {
	instructions := []instruction.Instruction{
		instruction.LiteralBigInt{Value: "123456789012345678901234567890"},
		instruction.Text("HELLO WORLD", "SIMPLE_TEXT_A_Z_SPACE"),
		instruction.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ ", 2, ""),
		instruction.EvaluateAddition{Operand1: "1", Operand2: "199"},
	}

	for _, compression := range allCompressions {
		for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
			for _, in := range instructions {
				record, err := EncodeRecord(in, compression, engine)
				require.NoError(t, err)

				back, err := DecodeRecord(record)
				require.NoError(t, err, "%s %v", compression, in)
				require.True(t, instruction.Equal(in, back), "%s: %v != %v", compression, in, back)
			}
		}
	}
}

func TestRecord_Header(t *testing.T) {
	in := instruction.LiteralBigInt{Value: "7"}
	payload, err := instruction.MarshalMsgpack(in)
	require.NoError(t, err)

	record, err := EncodeRecord(in, format.CompressionNone, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.Len(t, record, HeaderSize+len(payload))
	require.Equal(t, []byte{0xD0, 0xC1, RecordVersion, uint8(format.CompressionNone) << 4}, record[:4])
	require.Equal(t, []byte{byte(len(payload)), 0, 0, 0}, record[4:8])
	require.Equal(t, payload, record[HeaderSize:])

	record, err = EncodeRecord(in, format.CompressionS2, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.Equal(t, []byte{0xC1, 0xD0, RecordVersion, uint8(format.CompressionS2)<<4 | endian.FlagBigEndian}, record[:4])
}

func TestDecodeRecord_Errors(t *testing.T) {
	valid, err := EncodeRecord(instruction.LiteralBigInt{Value: "42"}, format.CompressionNone, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, errs.ErrInvalidRecordHeader},
		{"short", valid[:5], errs.ErrInvalidRecordHeader},
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 0; return b }), errs.ErrInvalidRecordHeader},
		{"wrong byte order", mutate(func(b []byte) []byte { b[3] |= endian.FlagBigEndian; return b }), errs.ErrInvalidRecordHeader},
		{"bad version", mutate(func(b []byte) []byte { b[2] = 9; return b }), errs.ErrInvalidRecordHeader},
		{"bad compression", mutate(func(b []byte) []byte { b[3] = 0xf0; return b }), errs.ErrInvalidRecordHeader},
		{"truncated payload", valid[:len(valid)-1], errs.ErrInvalidRecordHeader},
		{"extra payload", append(append([]byte(nil), valid...), 0), errs.ErrInvalidRecordHeader},
		{"garbage payload", mutate(func(b []byte) []byte {
			for i := HeaderSize; i < len(b); i++ {
				b[i] = 0xc1
			}
			return b
		}), errs.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord(tt.data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodeRecord_Errors(t *testing.T) {
	_, err := EncodeRecord(nil, format.CompressionNone, endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = EncodeRecord(instruction.LiteralBigInt{Value: "1"}, format.CompressionType(9), endian.GetLittleEndianEngine())
	require.Error(t, err)
}
