package instruction

import (
	"fmt"
	"strings"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/compress"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/internal/pool"
)

// CostModel estimates the stored size of an instruction. Lower is better.
//
// Implementations must be deterministic: equal instructions always cost the same.
type CostModel interface {
	Name() string
	Cost(in Instruction) (int, error)
}

// Serializer is a CostModel whose cost is the length of a concrete serialization.
type Serializer interface {
	CostModel
	AppendSerialized(dst []byte, in Instruction) ([]byte, error)
}

var (
	_ Serializer = BinaryCost{}
	_ Serializer = JSONCost{}
	_ Serializer = MsgpackCost{}
	_ CostModel  = CompressedCost{}
)

// BinaryCost measures the compact binary form. It is the default model.
type BinaryCost struct {
	// DefaultAlphabetID is elided from the serialization.
	DefaultAlphabetID string
}

// DefaultCostModel returns BinaryCost for the built-in default alphabet.
func DefaultCostModel() BinaryCost {
	return BinaryCost{DefaultAlphabetID: alphabet.SimpleTextID}
}

func (BinaryCost) Name() string { return "binary" }

func (c BinaryCost) AppendSerialized(dst []byte, in Instruction) ([]byte, error) {
	return AppendBinary(dst, in, c.DefaultAlphabetID)
}

func (c BinaryCost) Cost(in Instruction) (int, error) {
	return serializedLen(c, in)
}

// JSONCost measures the JSON interchange form.
type JSONCost struct{}

func (JSONCost) Name() string { return "json" }

func (JSONCost) AppendSerialized(dst []byte, in Instruction) ([]byte, error) {
	data, err := Marshal(in)
	if err != nil {
		return dst, err
	}

	return append(dst, data...), nil
}

func (c JSONCost) Cost(in Instruction) (int, error) {
	return serializedLen(c, in)
}

// MsgpackCost measures the msgpack storage form.
type MsgpackCost struct{}

func (MsgpackCost) Name() string { return "msgpack" }

func (MsgpackCost) AppendSerialized(dst []byte, in Instruction) ([]byte, error) {
	data, err := MarshalMsgpack(in)
	if err != nil {
		return dst, err
	}

	return append(dst, data...), nil
}

func (c MsgpackCost) Cost(in Instruction) (int, error) {
	return serializedLen(c, in)
}

// CompressedCost measures Base's serialization after compression.
type CompressedCost struct {
	Base        Serializer
	Compression format.CompressionType
}

func (c CompressedCost) Name() string {
	return fmt.Sprintf("%s+%s", c.Base.Name(), strings.ToLower(c.Compression.String()))
}

func (c CompressedCost) Cost(in Instruction) (int, error) {
	codec, err := compress.CreateCodec(c.Compression, "cost model")
	if err != nil {
		return 0, err
	}

	buf := pool.GetInstructionBuffer()
	defer pool.PutInstructionBuffer(buf)

	buf.B, err = c.Base.AppendSerialized(buf.B, in)
	if err != nil {
		return 0, err
	}

	compressed, err := codec.Compress(buf.B)
	if err != nil {
		return 0, fmt.Errorf("compress %s: %w", in.Kind(), err)
	}

	return len(compressed), nil
}

func serializedLen(s Serializer, in Instruction) (int, error) {
	buf := pool.GetInstructionBuffer()
	defer pool.PutInstructionBuffer(buf)

	var err error
	buf.B, err = s.AppendSerialized(buf.B, in)
	if err != nil {
		return 0, err
	}

	return buf.Len(), nil
}

// CostModelByName builds a cost model from a configuration name.
//
// Accepted names are "binary", "json", "msgpack" and any of them followed by
// "+<compression>" ("binary+zstd", "json+lz4", ...). defaultAlphabetID is the id
// the binary form elides.
func CostModelByName(name, defaultAlphabetID string) (CostModel, error) {
	baseName, compression, compressed := strings.Cut(name, "+")

	var base Serializer
	switch strings.ToLower(baseName) {
	case "binary", "":
		base = BinaryCost{DefaultAlphabetID: defaultAlphabetID}
	case "json":
		base = JSONCost{}
	case "msgpack":
		base = MsgpackCost{}
	default:
		return nil, fmt.Errorf("unknown cost model %q", name)
	}

	if !compressed {
		return base, nil
	}

	compressionType, ok := format.CompressionTypeFromString(compression)
	if !ok {
		return nil, fmt.Errorf("unknown compression %q in cost model %q", compression, name)
	}

	return CompressedCost{Base: base, Compression: compressionType}, nil
}
