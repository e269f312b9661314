package usecase

import (
	"context"
	"fmt"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
)

// TaskUsecase defines business logic for the review queue fed by partial
// resolutions and field changes.
type TaskUsecase interface {
	List(ctx context.Context, query *repository.ListTaskQuery) ([]*entity.NotificationTask, int64, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) (*entity.NotificationTask, error)
	// Resolve dismisses a task without touching the dictionary or registry.
	Resolve(ctx context.Context, id int64) (*entity.NotificationTask, error)
	// ResolveAsNewRoot answers a ROOT_REQUEST by admitting the supplied root
	// into the dictionary and resolving the task atomically.
	ResolveAsNewRoot(ctx context.Context, id int64, root *entity.WordRoot) (*entity.WordRoot, error)
	// ResolveAsApprovedField answers a FIELD_UPDATE by flipping the reviewed
	// field to standard and resolving the task atomically.
	ResolveAsApprovedField(ctx context.Context, id int64) (*entity.StandardField, error)
}

type taskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{repo: repo}
}

func (u *taskUsecase) List(ctx context.Context, query *repository.ListTaskQuery) ([]*entity.NotificationTask, int64, error) {
	if query == nil {
		query = &repository.ListTaskQuery{}
	}
	query.Normalize()
	return u.repo.List(ctx, query)
}

func (u *taskUsecase) UnreadCount(ctx context.Context) (int64, error) {
	return u.repo.CountUnread(ctx)
}

func (u *taskUsecase) MarkRead(ctx context.Context, id int64) (*entity.NotificationTask, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: task id required", entity.ErrInvalidArgument)
	}
	return u.repo.MarkRead(ctx, id)
}

func (u *taskUsecase) Resolve(ctx context.Context, id int64) (*entity.NotificationTask, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: task id required", entity.ErrInvalidArgument)
	}
	return u.repo.Resolve(ctx, id)
}

func (u *taskUsecase) ResolveAsNewRoot(ctx context.Context, id int64, root *entity.WordRoot) (*entity.WordRoot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: task id required", entity.ErrInvalidArgument)
	}
	norm, err := normalizeRootForUpsert(root)
	if err != nil {
		return nil, err
	}
	return u.repo.ResolveAsNewRoot(ctx, id, norm)
}

func (u *taskUsecase) ResolveAsApprovedField(ctx context.Context, id int64) (*entity.StandardField, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: task id required", entity.ErrInvalidArgument)
	}
	return u.repo.ResolveAsApprovedField(ctx, id)
}
