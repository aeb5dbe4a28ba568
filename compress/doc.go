// Package compress provides the compression codecs used for instruction payloads.
//
// Codecs serve two purposes: the store compresses persisted instruction records, and
// instruction.CompressedCost measures an instruction by the size of its compressed
// serialization.
//
// Supported algorithms:
//   - None: payload is passed through unchanged
//   - Zstd: best ratio; pure Go by default, cgo (valyala/gozstd) with the "gozstd" build tag
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Instructions are small (tens of bytes), so framing overhead dominates and the None
// codec is frequently the smallest. Compression pays off for long text and repeat
// patterns.
//
// All codecs are safe for concurrent use.
package compress
