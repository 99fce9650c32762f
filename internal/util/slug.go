package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SlugWords splits a name into lowercase words with accents removed.
// Letters and digits of any script are kept; everything else separates
// words. Returns nil when nothing is left.
func SlugWords(s string) []string {
	s = removeAccents(strings.ToLower(s))
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return nil
	}
	return words
}

// Slugify joins SlugWords with hyphens. Color names are matched through
// their slugs, so "Crème Brûlée" and "creme-brulee" refer to the same row.
func Slugify(s string) string {
	return strings.Join(SlugWords(s), "-")
}

// removeAccents drops nonspacing marks after NFD decomposition.
func removeAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
