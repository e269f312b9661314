package usecase

import (
	"strings"

	"github.com/eslsoft/datastd/internal/entity"
)

// Compose folds matched segments into a field name proposal: winning
// abbreviations joined by underscores, unmatched spans kept as [span]
// placeholders. Composition is pure; calling it twice with the same segments
// yields the same result.
func Compose(description string, segments []entity.MatchSegment) entity.Composition {
	comp := entity.Composition{
		CNName:       entity.NormalizeTerm(description),
		Segments:     segments,
		FullyMatched: len(segments) > 0,
	}

	parts := make([]string, 0, len(segments))
	hintCount := make(map[string]int)
	hintFirst := make(map[string]int)

	for idx, seg := range segments {
		best, ok := seg.Best()
		if !ok {
			comp.FullyMatched = false
			comp.UnmatchedSpans = append(comp.UnmatchedSpans, seg.Span)
			parts = append(parts, "["+seg.Span+"]")
			continue
		}
		parts = append(parts, best.ENAbbr)
		comp.CompositionIDs = append(comp.CompositionIDs, best.RootID)
		if best.DataType != "" {
			hintCount[best.DataType]++
			if _, seen := hintFirst[best.DataType]; !seen {
				hintFirst[best.DataType] = idx
			}
		}
	}

	comp.ENName = strings.Join(parts, "_")
	comp.DataType = pickDataType(hintCount, hintFirst)
	return comp
}

// pickDataType selects the most frequent data type hint among the winning
// roots; frequency ties go to the hint seen earliest in segment order.
func pickDataType(count map[string]int, first map[string]int) string {
	best := ""
	for hint := range count {
		if best == "" {
			best = hint
			continue
		}
		switch {
		case count[hint] > count[best]:
			best = hint
		case count[hint] == count[best] && first[hint] < first[best]:
			best = hint
		}
	}
	return best
}
