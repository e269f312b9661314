package repository

import (
	"context"

	"github.com/eslsoft/datastd/internal/entity"
)

type ListTaskQuery struct {
	Pagination
	FilterOrder
}

// TaskRepository defines data access for the review queue. The resolve
// operations are transactional: the task state change and its side effect
// commit or roll back together.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.NotificationTask) (*entity.NotificationTask, error)
	GetByID(ctx context.Context, id int64) (*entity.NotificationTask, error)
	// List returns tasks in queue order: created_at ascending, then ID.
	List(ctx context.Context, query *ListTaskQuery) ([]*entity.NotificationTask, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	// MarkRead is idempotent; marking a read or resolved task is a no-op.
	MarkRead(ctx context.Context, id int64) (*entity.NotificationTask, error)
	// Resolve dismisses a task without side effects.
	Resolve(ctx context.Context, id int64) (*entity.NotificationTask, error)
	// ResolveAsNewRoot inserts the root and resolves the task in one
	// transaction. A duplicate abbreviation rolls back both.
	ResolveAsNewRoot(ctx context.Context, id int64, root *entity.WordRoot) (*entity.WordRoot, error)
	// ResolveAsApprovedField flips the referenced field to standard and
	// resolves the task in one transaction.
	ResolveAsApprovedField(ctx context.Context, id int64) (*entity.StandardField, error)
}
