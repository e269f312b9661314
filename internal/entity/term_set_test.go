package entity

import (
	"reflect"
	"testing"
)

func TestNewTermSetNormalizesAndDeduplicates(t *testing.T) {
	set := NewTermSet(" 钱 ", "费用", "钱", "", "Price", "ＰＲＩＣＥ")
	want := TermSet{"钱", "费用", "price"}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("unexpected set: got %v want %v", set, want)
	}
}

func TestParseTermSetRoundTrip(t *testing.T) {
	set := ParseTermSet("钱, 费用 ,价格,,钱")
	if got := set.Join(); got != "钱,费用,价格" {
		t.Fatalf("unexpected join: %q", got)
	}
	if !set.Contains("费用") || !set.Contains(" 费用 ") {
		t.Fatalf("expected membership for 费用")
	}
	if set.Contains("税费") {
		t.Fatalf("unexpected membership for 税费")
	}
}

func TestParseTermSetEmpty(t *testing.T) {
	if set := ParseTermSet("  "); set != nil {
		t.Fatalf("expected nil set, got %v", set)
	}
	if set := NewTermSet("", " "); set != nil {
		t.Fatalf("expected nil set, got %v", set)
	}
}

func TestTermSetWithout(t *testing.T) {
	set := NewTermSet("金额", "钱", "费用")
	got := set.Without("钱")
	want := TermSet{"金额", "费用"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected set: got %v want %v", got, want)
	}
	if got := set.Without("金额").Without("钱").Without("费用"); got != nil {
		t.Fatalf("expected nil after removing all, got %v", got)
	}
}

func TestNormalizeTermFoldsWidthAndCase(t *testing.T) {
	cases := map[string]string{
		"  订单  ":  "订单",
		"Amount": "amount",
		"ＡＭＴ":    "amt",
		"金额":     "金额",
	}
	for in, want := range cases {
		if got := NormalizeTerm(in); got != want {
			t.Fatalf("NormalizeTerm(%q) = %q, want %q", in, got, want)
		}
	}
}
