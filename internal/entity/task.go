package entity

import "time"

// TaskType enumerates review queue task categories.
type TaskType string

const (
	// TaskRootRequest asks an administrator to mint roots for spans the
	// matcher could not resolve.
	TaskRootRequest TaskType = "ROOT_REQUEST"
	// TaskFieldUpdate asks an administrator to review a new or modified
	// standard field.
	TaskFieldUpdate TaskType = "FIELD_UPDATE"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskRootRequest, TaskFieldUpdate:
		return true
	default:
		return false
	}
}

// TaskStatus is the lifecycle state derived from the is_read / resolved_at
// pair: CREATED -> READ -> RESOLVED, with RESOLVED terminal.
type TaskStatus string

const (
	TaskStatusCreated  TaskStatus = "CREATED"
	TaskStatusRead     TaskStatus = "READ"
	TaskStatusResolved TaskStatus = "RESOLVED"
)

// NotificationTask is a durable review item produced by the naming flow.
type NotificationTask struct {
	ID         int64       `json:"id"`
	Type       TaskType    `json:"task_type"`
	Payload    TaskPayload `json:"payload"`
	IsRead     bool        `json:"is_read"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Status derives the lifecycle state. Resolution implies read.
func (t *NotificationTask) Status() TaskStatus {
	switch {
	case t.ResolvedAt != nil:
		return TaskStatusResolved
	case t.IsRead:
		return TaskStatusRead
	default:
		return TaskStatusCreated
	}
}

// Resolved reports whether the task reached its terminal state.
func (t *NotificationTask) Resolved() bool { return t.ResolvedAt != nil }

// TaskPayload snapshots the state that motivated a task. Fields irrelevant to
// the task type stay empty and are omitted from the stored JSON.
type TaskPayload struct {
	Description    string         `json:"description,omitempty"`
	SuggestedName  string         `json:"suggested_name,omitempty"`
	UnmatchedSpans []string       `json:"unmatched_spans,omitempty"`
	Segments       []MatchSegment `json:"segments,omitempty"`
	FieldID        int64          `json:"field_id,omitempty"`
	FieldCNName    string         `json:"field_cn_name,omitempty"`
	FieldENName    string         `json:"field_en_name,omitempty"`
}
