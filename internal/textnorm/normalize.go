// Package textnorm normalizes and tokenizes transcript text before matching.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, replaces every rune outside letters, numbers,
// whitespace, apostrophes and hyphens with a space, collapses whitespace
// runs and trims. Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		keep := unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '-'
		switch {
		case keep:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			// Whitespace and everything else both become a single separator.
			space = true
		}
	}
	return b.String()
}

// Tokenize splits normalized text into words and canonicalizes each word
// through the homophone table. Empty input yields an empty slice.
func Tokenize(s string) []string {
	norm := Normalize(s)
	if norm == "" {
		return nil
	}

	fields := strings.Split(norm, " ")
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if canon, ok := homophones[f]; ok {
			f = canon
		}
		tokens = append(tokens, f)
	}
	return tokens
}
