package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// NormalizeTerm folds a term into its canonical comparison form: full-width
// characters narrowed to half-width, surrounding space trimmed, Latin letters
// lowered. CJK runes pass through unchanged.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(width.Narrow.String(term)))
}

// NormalizeAbbr lowers and trims an English abbreviation.
func NormalizeAbbr(abbr string) string {
	return strings.ToLower(strings.TrimSpace(width.Narrow.String(abbr)))
}

// IsSeparator reports whether r delimits spans inside a field description.
// Separators are dropped during segmentation and never appear in spans.
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
