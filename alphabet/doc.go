// Package alphabet builds the symbol tables used by the text modality.
//
// An alphabet is built from a raw definition string: its runes are sorted and deduplicated
// and receive ascending digit values 0..base-1. Alphabets are registered by identifier in a
// Registry, which instructions reference through their alphabet_id field.
//
// # Built-in Alphabets
//
//   - SIMPLE_TEXT_A_Z_SPACE: "ABCDEFGHIJKLMNOPQRSTUVWXYZ " (base 27, case-insensitive, default).
//     Sorted, the space is the zero symbol.
//   - PROGRAMMER_TEXT: whitespace, ASCII letters/digits/punctuation, arrows, math and
//     Latin-1 symbols (case-sensitive).
//
// # Basic Usage
//
//	reg := alphabet.NewDefaultRegistry()
//	a, err := reg.Get(alphabet.SimpleTextID)
//	if err != nil {
//	    return err
//	}
//	v, ok := a.Value('b') // 2, true: lookup folds to upper case
package alphabet
