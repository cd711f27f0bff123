// Package matching implements the name normalization and suggestion matching
// used for duplicate detection: the server uses Normalize for the hard
// duplicate gate on create, the client workflow uses Matches to surface
// suggestions while the user types.
package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, drops the combining marks, and recomposes.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases a product name, strips diacritics, and trims
// surrounding whitespace. "  Lácteos " and "lacteos" normalize equal.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	stripped, _, err := transform.String(stripDiacritics, trimmed)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the
		// lower-cased input so matching still degrades to exact.
		return trimmed
	}
	return stripped
}

// Equal reports whether two names are the same after normalization. This is
// the strict test behind the duplicate-conflict gate.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Matches reports whether a stored product name should be suggested for a
// typed candidate. The test is deliberately permissive: the normalized stored
// name may contain, be contained by, start with, or end with the normalized
// candidate. Short inputs therefore surface many matches.
func Matches(candidate, stored string) bool {
	c := Normalize(candidate)
	s := Normalize(stored)
	if c == "" || s == "" {
		return false
	}
	return strings.Contains(s, c) ||
		strings.Contains(c, s) ||
		strings.HasPrefix(s, c) ||
		strings.HasSuffix(s, c)
}
