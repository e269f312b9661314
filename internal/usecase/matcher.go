package usecase

import (
	"sort"

	"github.com/samber/lo"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/pkg/trigram"
)

const (
	// DefaultSimilarityThreshold is the minimum fuzzy score a candidate
	// needs to be considered at all.
	DefaultSimilarityThreshold = 0.3
	// DefaultMaxCandidates bounds how many candidates a segment keeps for
	// review payloads.
	DefaultMaxCandidates = 5
)

// SimilarityFunc scores how alike two terms are, in [0, 1]. Swapping it
// changes how fuzzy candidates are scored, never how candidates are ranked.
type SimilarityFunc func(a, b string) float64

// Matcher segments field descriptions against a dictionary snapshot and
// ranks candidate roots per segment. It is stateless between calls; every
// resolution works on the snapshot passed in.
type Matcher struct {
	similarity    SimilarityFunc
	threshold     float64
	maxCandidates int
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithSimilarity replaces the fuzzy scoring function.
func WithSimilarity(fn SimilarityFunc) MatcherOption {
	return func(m *Matcher) {
		if fn != nil {
			m.similarity = fn
		}
	}
}

// WithThreshold sets the minimum fuzzy score.
func WithThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// WithMaxCandidates caps per-segment candidate lists.
func WithMaxCandidates(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.maxCandidates = n
		}
	}
}

// NewMatcher builds a matcher with trigram similarity and default limits.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		similarity:    trigram.Similarity,
		threshold:     DefaultSimilarityThreshold,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match normalizes and segments description, then scores dictionary
// candidates for every segment. The output is deterministic for a given
// snapshot: candidates are ordered by score descending with ties broken by
// lowest root ID.
func (m *Matcher) Match(dict *entity.Dictionary, description string) ([]entity.MatchSegment, error) {
	normalized := entity.NormalizeTerm(description)
	if normalized == "" {
		return nil, entity.ErrEmptyDescription
	}

	spans := segment(dict, normalized)
	return lo.Map(spans, func(span string, _ int) entity.MatchSegment {
		return m.scoreSpan(dict, span)
	}), nil
}

// segment scans input greedily, preferring the longest dictionary term at
// each position. Separator runes split spans and are dropped. Runs of runes
// that start no dictionary term coalesce into one unmatched span, so an
// unknown compound like 税费 surfaces as a single reviewable unit instead of
// per-character noise.
func segment(dict *entity.Dictionary, input string) []string {
	runes := []rune(input)
	var spans []string
	var pending []rune

	flush := func() {
		if len(pending) > 0 {
			spans = append(spans, string(pending))
			pending = nil
		}
	}

	for i := 0; i < len(runes); {
		if entity.IsSeparator(runes[i]) {
			flush()
			i++
			continue
		}

		limit := dict.MaxTermLen()
		if rest := len(runes) - i; rest < limit {
			limit = rest
		}
		term := ""
		for l := limit; l >= 1; l-- {
			if candidate := string(runes[i : i+l]); dict.HasTerm(candidate) {
				term = candidate
				i += l
				break
			}
		}
		if term == "" {
			pending = append(pending, runes[i])
			i++
			continue
		}
		flush()
		spans = append(spans, term)
	}
	flush()
	return spans
}

func (m *Matcher) scoreSpan(dict *entity.Dictionary, span string) entity.MatchSegment {
	seg := entity.MatchSegment{Span: span}

	candidates := lo.FilterMap(dict.Entries(), func(e entity.DictEntry, _ int) (entity.RootCandidate, bool) {
		return m.scoreEntry(e, span)
	})
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].RootID < candidates[j].RootID
	})
	if len(candidates) > m.maxCandidates {
		candidates = candidates[:m.maxCandidates]
	}
	if len(candidates) > 0 {
		seg.Matched = true
		seg.Candidates = candidates
	}
	return seg
}

func (m *Matcher) scoreEntry(e entity.DictEntry, span string) (entity.RootCandidate, bool) {
	cand := entity.RootCandidate{
		RootID:   e.Root.ID,
		CNName:   e.Root.CNName,
		ENAbbr:   e.Root.ENAbbr,
		DataType: e.Root.DataType,
	}

	if e.CNKey == span {
		cand.Kind, cand.Score = entity.MatchExact, entity.ScoreExact
		return cand, true
	}
	for _, key := range e.SynKeys {
		if key == span {
			cand.Kind, cand.Score = entity.MatchSynonym, entity.ScoreSynonym
			return cand, true
		}
	}

	best := m.similarity(e.CNKey, span)
	for _, key := range e.SynKeys {
		if s := m.similarity(key, span); s > best {
			best = s
		}
	}
	if best < m.threshold {
		return entity.RootCandidate{}, false
	}
	cand.Kind, cand.Score = entity.MatchFuzzy, best
	return cand, true
}
