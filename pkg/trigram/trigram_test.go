package trigram

import "testing"

func TestSetPadsWords(t *testing.T) {
	set := Set("cat")
	want := []string{"  c", " ca", "cat", "at "}
	if len(set) != len(want) {
		t.Fatalf("got %d trigrams, want %d: %v", len(set), len(want), set)
	}
	for _, tri := range want {
		if _, ok := set[tri]; !ok {
			t.Fatalf("missing trigram %q in %v", tri, set)
		}
	}
}

func TestSetCJK(t *testing.T) {
	set := Set("税费")
	want := []string{"  税", " 税费", "税费 "}
	if len(set) != len(want) {
		t.Fatalf("got %d trigrams, want %d: %v", len(set), len(want), set)
	}
	for _, tri := range want {
		if _, ok := set[tri]; !ok {
			t.Fatalf("missing trigram %q in %v", tri, set)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if got := Similarity("金额", "金额"); got != 1 {
		t.Fatalf("identical strings: got %v, want 1", got)
	}
	if got := Similarity("税费", "金额"); got != 0 {
		t.Fatalf("disjoint strings: got %v, want 0", got)
	}
	if got := Similarity("", "金额"); got != 0 {
		t.Fatalf("empty input: got %v, want 0", got)
	}
	if got := Similarity(" ,;", "金额"); got != 0 {
		t.Fatalf("separator-only input: got %v, want 0", got)
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// trigrams(发票) = 3, trigrams(发票号码) = 5, shared = 2, union = 6.
	got := Similarity("发票", "发票号码")
	want := 2.0 / 6.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"订单金额", "订单"},
		{"fee", "taxfee"},
		{"价格", "价钱"},
	}
	for _, p := range pairs {
		if ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0]); ab != ba {
			t.Fatalf("asymmetric similarity for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestSimilarityCaseInsensitive(t *testing.T) {
	if got := Similarity("Amount", "amount"); got != 1 {
		t.Fatalf("case fold failed: %v", got)
	}
}

func TestSetSplitsOnSeparators(t *testing.T) {
	joined := Set("订单金额")
	if _, ok := joined["单金额"]; !ok {
		t.Fatalf("joined form should contain cross-word trigram, got %v", joined)
	}

	split := Set("订单 金额")
	if _, ok := split["单金额"]; ok {
		t.Fatalf("split form must not contain cross-word trigram, got %v", split)
	}
	for _, tri := range []string{"订单 ", "  金"} {
		if _, ok := split[tri]; !ok {
			t.Fatalf("missing trigram %q in %v", tri, split)
		}
	}
}
