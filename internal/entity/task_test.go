package entity

import (
	"testing"
	"time"
)

func TestTaskStatusDerivation(t *testing.T) {
	now := time.Now()

	task := NotificationTask{Type: TaskRootRequest}
	if got := task.Status(); got != TaskStatusCreated {
		t.Fatalf("fresh task status = %s, want %s", got, TaskStatusCreated)
	}

	task.IsRead = true
	if got := task.Status(); got != TaskStatusRead {
		t.Fatalf("read task status = %s, want %s", got, TaskStatusRead)
	}

	task.ResolvedAt = &now
	if got := task.Status(); got != TaskStatusResolved {
		t.Fatalf("resolved task status = %s, want %s", got, TaskStatusResolved)
	}
	if !task.Resolved() {
		t.Fatalf("expected Resolved() true")
	}
}

func TestTaskTypeValid(t *testing.T) {
	if !TaskRootRequest.Valid() || !TaskFieldUpdate.Valid() {
		t.Fatalf("known types must be valid")
	}
	if TaskType("FIELD_REQUEST").Valid() {
		t.Fatalf("unknown type must be invalid")
	}
}

func TestFieldHasPlaceholder(t *testing.T) {
	complete := StandardField{ENName: "order_amt"}
	if complete.HasPlaceholder() {
		t.Fatalf("order_amt flagged as placeholder")
	}
	pending := StandardField{ENName: "order_[税费]"}
	if !pending.HasPlaceholder() {
		t.Fatalf("order_[税费] not flagged as placeholder")
	}
}

func TestWordRootNormalizeValidate(t *testing.T) {
	root := WordRoot{
		CNName:   " 金额 ",
		ENAbbr:   " AMT ",
		Synonyms: TermSet{"钱", "金额", "费用"},
	}
	root.Normalize()
	if root.CNName != "金额" || root.ENAbbr != "amt" {
		t.Fatalf("normalize failed: %+v", root)
	}
	if root.Synonyms.Contains("金额") {
		t.Fatalf("synonym equal to cn_name must be dropped")
	}
	if err := root.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	bad := WordRoot{CNName: "金额", ENAbbr: "9amt"}
	bad.Normalize()
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validation error for abbreviation starting with a digit")
	}
}
