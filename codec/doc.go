// Package codec converts canonical indices to and from positional numeral encodings.
//
// A canonical index is a nonnegative *big.Int. The codec maps it bijectively onto:
//
//   - text over an alphabet (see package alphabet), one rune per digit
//   - sequences of fixed-width uint32 words (bit depth 1-32)
//   - sequences of arbitrary-precision words (bit depth 1-4096)
//
// All encodings are big-endian: the first unit is the most significant digit. Decoding
// uses Horner's method; encoding uses repeated division and left-pads with zero units to
// the requested length.
//
// # Round-Trip Guarantee
//
// For every index >= 0 and every base >= 2:
//
//	decode(encode(index, base, n)) == index   for all n >= MinLength(index, base)
//
// Leading zero units are not preserved: "  AB" and "AB" decode to the same index in the
// default alphabet, whose zero symbol is the space.
//
// # Error Handling
//
// All functions return typed errors from package errs and never panic on bad input:
//
//   - errs.ErrNegativeIndex before any arithmetic on negative input
//   - *errs.UnknownSymbolError for text outside the alphabet
//   - *errs.WordOutOfRangeError for words wider than the bit depth
//   - *errs.IndexOutOfRangeError when the index needs more units than requested
//   - errs.ErrUnsupportedModality for bit depths outside the supported range
//
// # Thread Safety
//
// Every function is pure and safe for concurrent use.
package codec
