package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops the combining marks, so
// "JOSÉ" and "JOSE" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a free-text person name for matching:
// uppercase, diacritics stripped, periods removed, whitespace collapsed.
// The external cost sheets and the internal roster never agree on
// formatting, so every comparison goes through this.
func NormalizeName(name string) string {
	out, _, err := transform.String(stripMarks, name)
	if err != nil {
		out = name
	}
	out = strings.ToUpper(out)
	out = strings.ReplaceAll(out, ".", "")
	return strings.Join(strings.Fields(out), " ")
}
