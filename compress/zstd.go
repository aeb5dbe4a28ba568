package compress

// ZstdCompressor provides Zstandard compression.
//
// The pure Go implementation (klauspost/compress/zstd) is used unless the package is
// built with cgo and the "gozstd" build tag, which switches to valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
