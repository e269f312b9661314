package entity

import "strings"

// termSeparator delimits terms in the storage representation.
const termSeparator = ","

// TermSet holds synonym terms as a real set: every element is normalized,
// non-empty and unique. First-seen order is preserved so serialization stays
// deterministic, but membership and equality ignore order.
type TermSet []string

// NewTermSet builds a set from raw terms, normalizing and deduplicating.
func NewTermSet(terms ...string) TermSet {
	if len(terms) == 0 {
		return nil
	}
	out := make(TermSet, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		norm := NormalizeTerm(term)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseTermSet parses the delimited storage form.
func ParseTermSet(raw string) TermSet {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NewTermSet(strings.Split(raw, termSeparator)...)
}

// Join renders the storage form.
func (s TermSet) Join() string {
	return strings.Join(s, termSeparator)
}

// Contains reports membership of the normalized form of term.
func (s TermSet) Contains(term string) bool {
	norm := NormalizeTerm(term)
	for _, t := range s {
		if t == norm {
			return true
		}
	}
	return false
}

// Without returns a copy with the normalized form of term removed.
func (s TermSet) Without(term string) TermSet {
	norm := NormalizeTerm(term)
	out := make(TermSet, 0, len(s))
	for _, t := range s {
		if t != norm {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
