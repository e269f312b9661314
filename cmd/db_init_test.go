package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/eslsoft/datastd/internal/entity"
)

func Test_parseSeedCSV(t *testing.T) {
	input := strings.Join([]string{
		"cn_name,en_abbr,en_full_name,synonyms,data_type,remark",
		"订单,order,Order,订单信息;订购单,,业务词根",
		"金额,AMT,Amount,金额数;金额值；总额,\"DECIMAL(18,2)\",",
		"税费,tax",
	}, "\n")

	roots, err := parseSeedCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots got %d", len(roots))
	}
	if roots[0].CNName != "订单" || roots[0].ENAbbr != "order" || roots[0].ENFullName != "Order" {
		t.Fatalf("bad first: %+v", roots[0])
	}
	if roots[0].Remark != "业务词根" {
		t.Fatalf("remark not kept: %q", roots[0].Remark)
	}
	if len(roots[0].Synonyms) != 2 || !roots[0].Synonyms.Contains("订购单") {
		t.Fatalf("bad synonyms: %v", roots[0].Synonyms)
	}
	// Abbreviations are lowered, full-width semicolons split too.
	if roots[1].ENAbbr != "amt" {
		t.Fatalf("abbr not normalized: %q", roots[1].ENAbbr)
	}
	if len(roots[1].Synonyms) != 3 || !roots[1].Synonyms.Contains("总额") {
		t.Fatalf("bad synonyms: %v", roots[1].Synonyms)
	}
	if roots[1].DataType != "DECIMAL(18,2)" {
		t.Fatalf("data type not kept: %q", roots[1].DataType)
	}
	// Trailing columns may be omitted entirely.
	if roots[2].CNName != "税费" || roots[2].ENAbbr != "tax" || roots[2].ENFullName != "" || roots[2].Synonyms != nil {
		t.Fatalf("bad short row: %+v", roots[2])
	}
}

func Test_parseSeedCSV_noHeader(t *testing.T) {
	roots, err := parseSeedCSV(strings.NewReader("订单,order\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 || roots[0].ENAbbr != "order" {
		t.Fatalf("headerless file not parsed: %+v", roots)
	}
}

func Test_parseSeedCSV_shortRow(t *testing.T) {
	input := "cn_name,en_abbr\n订单,order\n税费\n"
	_, err := parseSeedCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for row missing en_abbr")
	}
	if !strings.Contains(err.Error(), "第 3 行") {
		t.Fatalf("error should name the offending line: %v", err)
	}
}

func Test_parseSeedCSV_invalidAbbr(t *testing.T) {
	input := "订单,Order-2026\n"
	_, err := parseSeedCSV(strings.NewReader(input))
	if !errors.Is(err, entity.ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot got %v", err)
	}
}

func Test_parseSeedCSV_synonymEqualToName(t *testing.T) {
	roots, err := parseSeedCSV(strings.NewReader("订单,order,,订单;订购单\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(roots[0].Synonyms) != 1 || roots[0].Synonyms.Contains("订单") {
		t.Fatalf("synonym equal to cn_name should be dropped: %v", roots[0].Synonyms)
	}
}

func Test_splitSynonymCell(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"订单信息", []string{"订单信息"}},
		{"订单信息;订购单", []string{"订单信息", "订购单"}},
		{"订单信息；订购单", []string{"订单信息", "订购单"}},
		{";订单信息;;订购单;", []string{"订单信息", "订购单"}},
		{"订单信息; 订单信息", []string{"订单信息"}},
	}
	for _, c := range cases {
		got := splitSynonymCell(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> got %v want %v", c.in, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> got %v want %v", c.in, got, c.want)
			}
		}
	}
}
