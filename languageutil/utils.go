package languageutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep internal state, so a fresh one is built per call.
func lowerCaser() cases.Caser {
	return cases.Lower(language.English)
}

// Normalize lower-cases a free-form descriptor and collapses its whitespace,
// e.g. "  Navy   Blue " -> "navy blue".
func Normalize(value string) string {
	return strings.Join(strings.Fields(lowerCaser().String(value)), " ")
}

// Tokens splits a descriptor like "Business meeting, 12°C" into lower-case
// words and numbers.
func Tokens(value string) []string {
	return strings.FieldsFunc(lowerCaser().String(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '#'
	})
}

// ContainsAny reports whether any keyword occurs as a token of value.
func ContainsAny(tokens []string, keywords ...string) bool {
	for _, token := range tokens {
		for _, keyword := range keywords {
			if token == keyword {
				return true
			}
		}
	}
	return false
}
