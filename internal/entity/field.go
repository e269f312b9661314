package entity

import (
	"fmt"
	"strings"
	"time"
)

// StandardField is a field-name mapping derived from the root dictionary.
// Rows start as candidates (is_standard=false) and become organization-wide
// standards only through review queue approval.
type StandardField struct {
	ID             int64     `json:"id"`
	CNName         string    `json:"cn_name"`
	ENName         string    `json:"en_name"`
	CompositionIDs []int64   `json:"composition_ids"` // ordered root IDs, one per resolved segment
	DataType       string    `json:"data_type,omitempty"`
	IsStandard     bool      `json:"is_standard"`
	Synonyms       TermSet   `json:"synonyms,omitempty"`
	Remark         string    `json:"remark,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FieldDetail joins a field with the ordered roots of its composition chain.
// Dangling chain entries (roots deleted by old imports) are omitted.
type FieldDetail struct {
	Field StandardField `json:"field"`
	Chain []WordRoot    `json:"chain"`
}

// Normalize folds the field's terms into canonical form.
func (f *StandardField) Normalize() {
	f.CNName = NormalizeTerm(f.CNName)
	f.ENName = NormalizeAbbr(f.ENName)
	f.DataType = strings.TrimSpace(f.DataType)
	f.Remark = strings.TrimSpace(f.Remark)
	f.Synonyms = NewTermSet(f.Synonyms...).Without(f.CNName)
}

// Validate reports whether the field can be stored. Call after Normalize.
func (f *StandardField) Validate() error {
	if f.CNName == "" {
		return fmt.Errorf("%w: cn_name is required", ErrInvalidField)
	}
	if f.ENName == "" {
		return fmt.Errorf("%w: en_name is required", ErrInvalidField)
	}
	return nil
}

// HasPlaceholder reports whether the composed name still carries unresolved
// placeholder segments and therefore cannot be approved as a standard.
func (f *StandardField) HasPlaceholder() bool {
	return strings.ContainsAny(f.ENName, "[]")
}
