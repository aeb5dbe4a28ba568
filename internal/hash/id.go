package hash

import (
	"math/big"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// IndexKey computes the xxHash64 of the big-endian magnitude of index.
// The sign is ignored; callers only hash nonnegative canonical indices.
func IndexKey(index *big.Int) uint64 {
	return xxhash.Sum64(index.Bytes())
}

// Runes computes the xxHash64 of a rune sequence in its UTF-8 form.
func Runes(runes []rune) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(runes))

	return d.Sum64()
}
