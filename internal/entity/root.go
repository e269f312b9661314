package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// WordRoot is one dictionary entry: a Chinese business term plus its synonyms,
// mapped to the canonical English abbreviation used when composing field names.
type WordRoot struct {
	ID         int64     `json:"id"`
	CNName     string    `json:"cn_name"`
	ENAbbr     string    `json:"en_abbr"`
	ENFullName string    `json:"en_full_name,omitempty"`
	Synonyms   TermSet   `json:"synonyms,omitempty"`
	DataType   string    `json:"data_type,omitempty"` // optional hint, e.g. DECIMAL(18,2)
	Remark     string    `json:"remark,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var abbrPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Normalize folds the root's terms into canonical form. Synonyms equal to the
// canonical name are dropped.
func (r *WordRoot) Normalize() {
	r.CNName = NormalizeTerm(r.CNName)
	r.ENAbbr = NormalizeAbbr(r.ENAbbr)
	r.ENFullName = strings.TrimSpace(r.ENFullName)
	r.DataType = strings.TrimSpace(r.DataType)
	r.Remark = strings.TrimSpace(r.Remark)
	r.Synonyms = NewTermSet(r.Synonyms...).Without(r.CNName)
}

// Validate reports whether the root can be stored. Call after Normalize.
func (r *WordRoot) Validate() error {
	if r.CNName == "" {
		return fmt.Errorf("%w: cn_name is required", ErrInvalidRoot)
	}
	if r.ENAbbr == "" {
		return fmt.Errorf("%w: en_abbr is required", ErrInvalidRoot)
	}
	if !abbrPattern.MatchString(r.ENAbbr) {
		return fmt.Errorf("%w: en_abbr %q must match %s", ErrInvalidRoot, r.ENAbbr, abbrPattern.String())
	}
	return nil
}

// Terms returns the canonical name followed by all synonyms.
func (r *WordRoot) Terms() []string {
	terms := make([]string, 0, len(r.Synonyms)+1)
	terms = append(terms, r.CNName)
	terms = append(terms, r.Synonyms...)
	return terms
}
