package store

import (
	"fmt"

	"github.com/arloliu/cindex/compress"
	"github.com/arloliu/cindex/endian"
	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/pool"
)

// Record header layout (8 bytes):
//
//	[0:2] magic 0xC1D0
//	[2]   version
//	[3]   flags: bit 0 big-endian, bits 4-7 compression type
//	[4:8] payload length
//
// Multi-byte fields use the byte order named by the flags. The payload is the msgpack
// form of the instruction after compression.
const (
	HeaderSize    = 8
	RecordMagic   = uint16(0xC1D0)
	RecordVersion = uint8(1)

	compressionShift = 4
)

// EncodeRecord serializes in as a record.
func EncodeRecord(in instruction.Instruction, compression format.CompressionType, engine endian.EndianEngine) ([]byte, error) {
	codec, err := compress.CreateCodec(compression, "record")
	if err != nil {
		return nil, err
	}

	payload, err := instruction.MarshalMsgpack(in)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	buf.Grow(HeaderSize + len(compressed))
	buf.B = engine.AppendUint16(buf.B, RecordMagic)
	buf.B = append(buf.B, RecordVersion, endian.Flags(engine)|uint8(compression)<<compressionShift)
	buf.B = engine.AppendUint32(buf.B, uint32(len(compressed)))
	buf.B = append(buf.B, compressed...)

	return append([]byte(nil), buf.B...), nil
}

// DecodeRecord parses a record produced by EncodeRecord.
//
// Header problems wrap errs.ErrInvalidRecordHeader; a damaged payload wraps errs.ErrParse.
func DecodeRecord(data []byte) (instruction.Instruction, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidRecordHeader, len(data))
	}

	flags := data[3]
	engine := endian.FromFlags(flags)

	if magic := engine.Uint16(data[0:2]); magic != RecordMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%04x", errs.ErrInvalidRecordHeader, magic)
	}
	if data[2] != RecordVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidRecordHeader, data[2])
	}

	compression := format.CompressionType(flags >> compressionShift)
	codec, err := compress.CreateCodec(compression, "record")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecordHeader, err)
	}

	payloadLen := engine.Uint32(data[4:8])
	if int(payloadLen) != len(data)-HeaderSize {
		return nil, fmt.Errorf("%w: payload length %d, have %d bytes", errs.ErrInvalidRecordHeader,
			payloadLen, len(data)-HeaderSize)
	}

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, &errs.ParseError{Reason: "decompress record payload", Err: err}
	}

	return instruction.UnmarshalMsgpack(payload)
}
