package entity

// MatchKind tags how a candidate root was matched against a segment. Keeping
// the mechanism on every candidate lets ranking and review payloads stay
// agnostic of the underlying similarity implementation.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchSynonym MatchKind = "synonym"
	MatchFuzzy   MatchKind = "fuzzy"
)

// Scores assigned to the non-fuzzy match kinds. Fuzzy candidates carry their
// similarity score directly.
const (
	ScoreExact   = 1.0
	ScoreSynonym = 0.9
)

// RootCandidate is one scored dictionary root for a segment.
type RootCandidate struct {
	RootID   int64     `json:"root_id"`
	CNName   string    `json:"cn_name"`
	ENAbbr   string    `json:"en_abbr"`
	DataType string    `json:"data_type,omitempty"`
	Kind     MatchKind `json:"kind"`
	Score    float64   `json:"score"`
}

// MatchSegment is one span of a segmented description together with its
// ranked candidates (score descending, ties broken by lowest root ID).
type MatchSegment struct {
	Span       string          `json:"span"`
	Matched    bool            `json:"matched"`
	Candidates []RootCandidate `json:"candidates,omitempty"`
}

// Best returns the winning candidate of a matched segment.
func (s MatchSegment) Best() (RootCandidate, bool) {
	if !s.Matched || len(s.Candidates) == 0 {
		return RootCandidate{}, false
	}
	return s.Candidates[0], true
}

// Composition is the deterministic result of resolving a description against
// a dictionary snapshot: the same snapshot and description always produce the
// same composition.
type Composition struct {
	CNName         string         `json:"cn_name"`
	ENName         string         `json:"en_name"`
	DataType       string         `json:"data_type,omitempty"`
	FullyMatched   bool           `json:"fully_matched"`
	Segments       []MatchSegment `json:"segments"`
	CompositionIDs []int64        `json:"composition_ids"`
	UnmatchedSpans []string       `json:"unmatched_spans,omitempty"`
}
