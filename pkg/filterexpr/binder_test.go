package filterexpr

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

type listMsg struct {
	filter  string
	orderBy string
}

func (m listMsg) GetFilter() string  { return m.filter }
func (m listMsg) GetOrderBy() string { return m.orderBy }

type listParams struct {
	Keyword       string
	TaskType      string
	Types         []string
	IsRead        *bool
	CreatedAfter  time.Time
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var testSchema = ResourceSchema{
	Filter: map[string]FilterField{
		"keyword": {
			Kind: KindString,
			Ops:  map[Op]string{OpEQ: "Keyword", OpSW: "Keyword"},
		},
		"task_type": {
			Kind: KindString,
			Ops:  map[Op]string{OpEQ: "TaskType", OpIN: "Types"},
		},
		"is_read": {
			Kind: KindBool,
			Ops:  map[Op]string{OpEQ: "IsRead"},
		},
		"created_at": {
			Kind: KindTimestamp,
			Ops:  map[Op]string{OpGTE: "CreatedAfter"},
		},
	},
	Order: OrderSchema{
		DefaultPrimary: "created_at",
		FallbackKey:    "id",
		Fields: map[string]OrderField{
			"created_at": {Expr: "created_at"},
			"id":         {Expr: "id"},
		},
	},
}

func TestBindDefaultsWhenEmpty(t *testing.T) {
	var p listParams
	if err := Bind(listMsg{}, &p, testSchema); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if p.PrimaryKey != "created_at" || p.PrimaryDesc {
		t.Fatalf("unexpected primary order: %+v", p)
	}
	if p.SecondaryKey != "id" || p.SecondaryDesc {
		t.Fatalf("unexpected secondary order: %+v", p)
	}
	if p.IsRead != nil {
		t.Fatalf("IsRead should stay nil when unfiltered")
	}
}

func TestBindConjunction(t *testing.T) {
	var p listParams
	msg := listMsg{
		filter:  `task_type == "ROOT_REQUEST" && is_read == false && created_at >= timestamp("2026-01-02T00:00:00Z")`,
		orderBy: "created_at desc",
	}
	if err := Bind(msg, &p, testSchema); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if p.TaskType != "ROOT_REQUEST" {
		t.Fatalf("TaskType = %q", p.TaskType)
	}
	if p.IsRead == nil || *p.IsRead {
		t.Fatalf("IsRead = %v, want false", p.IsRead)
	}
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !p.CreatedAfter.Equal(want) {
		t.Fatalf("CreatedAfter = %v, want %v", p.CreatedAfter, want)
	}
	if !p.PrimaryDesc || p.PrimaryKey != "created_at" {
		t.Fatalf("unexpected order params: %+v", p)
	}
}

func TestBindInList(t *testing.T) {
	var p listParams
	msg := listMsg{filter: `task_type in ["ROOT_REQUEST", "FIELD_UPDATE"]`}
	if err := Bind(msg, &p, testSchema); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !reflect.DeepEqual(p.Types, []string{"ROOT_REQUEST", "FIELD_UPDATE"}) {
		t.Fatalf("Types = %v", p.Types)
	}
}

func TestBindStartsWith(t *testing.T) {
	var p listParams
	if err := Bind(listMsg{filter: `keyword.startsWith("order")`}, &p, testSchema); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if p.Keyword != "order" {
		t.Fatalf("Keyword = %q", p.Keyword)
	}
}

func TestBindRejectsDisallowed(t *testing.T) {
	cases := []struct {
		name   string
		filter string
		want   string
	}{
		{"unknown field", `en_abbr == "amt"`, "is not allowed"},
		{"or operator", `task_type == "A" || is_read == false`, "only AND is allowed"},
		{"bad op for bool", `is_read >= true`, ""},
		{"type mismatch", `is_read == "yes"`, "expected bool literal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p listParams
			err := Bind(listMsg{filter: tc.filter}, &p, testSchema)
			if err == nil {
				t.Fatalf("expected error for %q", tc.filter)
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestBindRejectsUnknownOrderKey(t *testing.T) {
	var p listParams
	if err := Bind(listMsg{orderBy: "en_abbr desc"}, &p, testSchema); err == nil {
		t.Fatalf("expected error for unknown order key")
	}
}
