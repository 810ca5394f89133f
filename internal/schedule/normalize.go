// Package schedule holds the deterministic text and time primitives of the
// attendant: accent-insensitive matching, weekday resolution and interval
// arithmetic over "HH:MM" service windows.
package schedule

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, trims and strips diacritics so "Sábado" and
// "sabado" compare equal. The transform chain is built per call; it keeps
// internal state and must not be shared between goroutines.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Tokens splits normalized text into words longer than two runes, dropping
// punctuation. Short words are articles and prepositions in Portuguese and
// only produce false matches.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			out = append(out, f)
		}
	}
	return out
}
