// Package normalize holds the name canonicalization shared by the entity
// resolver and the match-column linker. All dimension lookups go through
// these helpers so that stored names and lookup keys are produced the
// same way.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// TrimUpper is the base normalization applied to every dimension name
// before storage or lookup.
func TrimUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StripDiacritics removes combining marks, so "LUJÁN" and "LUJAN"
// compare equal. Ñ decomposes to N as well, which matches how the
// source sheets alternate between the two spellings.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// CompactKey reduces a name to its A-Z0-9 skeleton: trimmed,
// upper-cased, diacritics stripped, everything else removed.
// "CTRAL. BALLESTER" and "Ctral Ballester" yield the same key.
func CompactKey(s string) string {
	cleaned := StripDiacritics(TrimUpper(s))
	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name produces the stored form of a dimension name: trimmed, upper,
// diacritics stripped, runs of whitespace collapsed to one space.
func Name(s string) string {
	cleaned := StripDiacritics(TrimUpper(s))
	return strings.Join(strings.Fields(cleaned), " ")
}
