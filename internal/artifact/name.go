// Package artifact names, writes and rasterizes per-character diagram files.
package artifact

import (
	"encoding/hex"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

// Prefix starts every diagram file name
const Prefix = "kanji_diagram_"

// Name returns the file name of the diagram artifact for symbol.
//
// Symbols made only of letters, marks, digits, '-' and '_' are used as is.
// Anything else (path separators, spaces, punctuation) is replaced by '~'
// followed by a BLAKE2b digest; '~' never occurs in the plain form, so the
// two forms cannot collide.
func Name(symbol, ext string) string {
	base := Prefix + safeSymbol(symbol)
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func safeSymbol(symbol string) string {
	if symbol != "" && isPlain(symbol) {
		return symbol
	}
	sum := blake2b.Sum256([]byte(symbol))
	return "~" + hex.EncodeToString(sum[:8])
}

func isPlain(s string) bool {
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsDigit(r):
		case r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
