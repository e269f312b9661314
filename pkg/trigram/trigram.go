// Package trigram implements the trigram similarity measure used by
// PostgreSQL's pg_trgm extension, operating on runes so CJK terms compare
// meaningfully. Each word is padded with two leading and one trailing space,
// every run of three consecutive runes becomes a trigram, and similarity is
// the ratio of shared to combined distinct trigrams.
package trigram

import (
	"strings"
	"unicode"
)

// Set returns the distinct trigrams of s. Words are separated by spaces,
// punctuation and symbol runes; comparison is case-insensitive.
func Set(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(strings.ToLower(s)) {
		padded := make([]rune, 0, len(word)+3)
		padded = append(padded, ' ', ' ')
		padded = append(padded, word...)
		padded = append(padded, ' ')
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns the shared-trigram overlap ratio of a and b in [0, 1],
// matching pg_trgm's similarity() for the same inputs. Strings without any
// trigram (empty or separator-only) score 0 against everything.
func Similarity(a, b string) float64 {
	ta := Set(a)
	tb := Set(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	if len(tb) < len(ta) {
		ta, tb = tb, ta
	}
	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func splitWords(s string) [][]rune {
	var words [][]rune
	var current []rune
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			if len(current) > 0 {
				words = append(words, current)
				current = nil
			}
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, current)
	}
	return words
}
