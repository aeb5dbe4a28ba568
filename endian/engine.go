// Package endian selects the byte order used by stored instruction records.
//
// Records are little-endian unless the header's big-endian flag is set; readers pick
// the engine from the flag so either order round-trips.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint16(buf, magic)
package endian

import "encoding/binary"

// FlagBigEndian marks a record whose fixed-width header fields are big-endian.
const FlagBigEndian uint8 = 1 << 0

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromFlags returns the engine selected by a record's flag byte.
func FromFlags(flags uint8) EndianEngine {
	if flags&FlagBigEndian != 0 {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// Flags returns the flag bits that identify engine.
func Flags(engine EndianEngine) uint8 {
	if engine == GetBigEndianEngine() {
		return FlagBigEndian
	}

	return 0
}
