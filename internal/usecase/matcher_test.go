package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/eslsoft/datastd/internal/entity"
)

func testDictionary() *entity.Dictionary {
	return entity.NewDictionary([]entity.WordRoot{
		{ID: 1, CNName: "订单", ENAbbr: "order", DataType: "varchar(32)"},
		{ID: 2, CNName: "金额", ENAbbr: "amt", DataType: "decimal(18,2)", Synonyms: entity.TermSet{"总额", "钱数"}},
		{ID: 3, CNName: "日期", ENAbbr: "date", DataType: "date"},
	})
}

func TestMatch_ExactSegments(t *testing.T) {
	m := NewMatcher()
	segs, err := m.Match(testDictionary(), "订单金额")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	for i, want := range []struct {
		span  string
		abbr  string
		score float64
	}{{"订单", "order", entity.ScoreExact}, {"金额", "amt", entity.ScoreExact}} {
		best, ok := segs[i].Best()
		if !ok {
			t.Fatalf("segment %d unmatched: %+v", i, segs[i])
		}
		if segs[i].Span != want.span || best.ENAbbr != want.abbr {
			t.Fatalf("segment %d: got (%s, %s), want (%s, %s)", i, segs[i].Span, best.ENAbbr, want.span, want.abbr)
		}
		if best.Kind != entity.MatchExact || best.Score != want.score {
			t.Fatalf("segment %d: got kind=%s score=%v", i, best.Kind, best.Score)
		}
	}
}

func TestMatch_SynonymScoresBelowExact(t *testing.T) {
	m := NewMatcher()
	segs, err := m.Match(testDictionary(), "订单总额")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	best, ok := segs[1].Best()
	if !ok {
		t.Fatalf("synonym segment unmatched: %+v", segs[1])
	}
	if best.RootID != 2 || best.Kind != entity.MatchSynonym || best.Score != entity.ScoreSynonym {
		t.Fatalf("got %+v, want root 2 synonym %v", best, entity.ScoreSynonym)
	}
}

func TestMatch_UnknownRunsCoalesce(t *testing.T) {
	m := NewMatcher()
	segs, err := m.Match(testDictionary(), "订单税费")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[1].Span != "税费" {
		t.Fatalf("expected unknown run to stay one span, got %q", segs[1].Span)
	}
	if segs[1].Matched {
		t.Fatalf("expected 税费 unmatched, got candidates %+v", segs[1].Candidates)
	}
}

func TestMatch_SeparatorsSplitAndDrop(t *testing.T) {
	m := NewMatcher()
	for _, input := range []string{"订单 金额", "订单-金额", "订单_金额", "订单，金额"} {
		segs, err := m.Match(testDictionary(), input)
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", input, err)
		}
		if len(segs) != 2 || segs[0].Span != "订单" || segs[1].Span != "金额" {
			t.Fatalf("%q: got %+v", input, segs)
		}
	}
}

func TestMatch_GreedyPrefersLongestTerm(t *testing.T) {
	dict := entity.NewDictionary([]entity.WordRoot{
		{ID: 1, CNName: "订单", ENAbbr: "order"},
		{ID: 2, CNName: "订单号", ENAbbr: "order_no"},
		{ID: 3, CNName: "金额", ENAbbr: "amt"},
	})
	m := NewMatcher()
	segs, err := m.Match(dict, "订单号金额")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 2 || segs[0].Span != "订单号" {
		t.Fatalf("expected longest-match 订单号 first, got %+v", segs)
	}
	best, _ := segs[0].Best()
	if best.RootID != 2 {
		t.Fatalf("expected root 2, got %+v", best)
	}
}

func TestMatch_NormalizesWidthAndCase(t *testing.T) {
	dict := entity.NewDictionary([]entity.WordRoot{
		{ID: 1, CNName: "ID", ENAbbr: "id"},
	})
	m := NewMatcher()
	segs, err := m.Match(dict, "　ＩＤ　")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 1 || segs[0].Span != "id" || !segs[0].Matched {
		t.Fatalf("expected folded id match, got %+v", segs)
	}
}

func TestMatch_EmptyDescription(t *testing.T) {
	m := NewMatcher()
	for _, input := range []string{"", "   ", "　"} {
		if _, err := m.Match(testDictionary(), input); !errors.Is(err, entity.ErrEmptyDescription) {
			t.Fatalf("%q: expected ErrEmptyDescription, got %v", input, err)
		}
	}
}

func TestMatch_FuzzyCandidateByTrigram(t *testing.T) {
	dict := entity.NewDictionary([]entity.WordRoot{
		{ID: 1, CNName: "发票号码", ENAbbr: "inv_no"},
	})
	m := NewMatcher()
	segs, err := m.Match(dict, "发票号")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %+v", segs)
	}
	best, ok := segs[0].Best()
	if !ok {
		t.Fatalf("expected fuzzy candidate, got %+v", segs[0])
	}
	if best.Kind != entity.MatchFuzzy || best.Score != 0.5 {
		t.Fatalf("got kind=%s score=%v, want fuzzy 0.5", best.Kind, best.Score)
	}
}

func TestMatch_RankingAndLimits(t *testing.T) {
	dict := entity.NewDictionary([]entity.WordRoot{
		{ID: 2, CNName: "单号", ENAbbr: "no"},
		{ID: 1, CNName: "票据", ENAbbr: "bill"},
	})
	fixed := func(a, b string) float64 { return 0.5 }

	m := NewMatcher(WithSimilarity(fixed))
	segs, err := m.Match(dict, "单据")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs) != 1 || len(segs[0].Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", segs)
	}
	// Equal scores fall back to lowest root ID.
	if segs[0].Candidates[0].RootID != 1 || segs[0].Candidates[1].RootID != 2 {
		t.Fatalf("bad tie-break order: %+v", segs[0].Candidates)
	}

	m = NewMatcher(WithSimilarity(fixed), WithMaxCandidates(1))
	segs, err = m.Match(dict, "单据")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(segs[0].Candidates) != 1 || segs[0].Candidates[0].RootID != 1 {
		t.Fatalf("expected capped candidate list, got %+v", segs[0].Candidates)
	}

	m = NewMatcher(WithSimilarity(fixed), WithThreshold(0.6))
	segs, err = m.Match(dict, "单据")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if segs[0].Matched {
		t.Fatalf("expected below-threshold span to stay unmatched, got %+v", segs[0])
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewMatcher()
	dict := testDictionary()
	first, err := m.Match(dict, "订单金额日期")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Match(dict, "订单金额日期")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}
