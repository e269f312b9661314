package usecase

import (
	"context"
	"fmt"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
)

const (
	_defaultSearchLimit = int32(10)
	_maxSearchLimit     = int32(50)
)

// ResolveResult pairs a composition with the review task enqueued for it,
// when the resolution needed one.
type ResolveResult struct {
	Composition entity.Composition        `json:"composition"`
	Task        *entity.NotificationTask `json:"task,omitempty"`
}

// FieldUsecase defines business logic for resolving field descriptions and
// managing the standard field registry.
type FieldUsecase interface {
	// Resolve composes a field name for a free-text description. A fully
	// matched resolution is a pure preview; a partial one additionally
	// enqueues a ROOT_REQUEST task carrying the unmatched spans.
	Resolve(ctx context.Context, description string) (*ResolveResult, error)
	Create(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error)
	Update(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error)
	Get(ctx context.Context, id int64) (*entity.FieldDetail, error)
	List(ctx context.Context, query *repository.ListFieldQuery) ([]*entity.StandardField, int64, error)
	Search(ctx context.Context, keyword string, limit int32) ([]*entity.StandardField, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type fieldUsecase struct {
	fields  repository.FieldRepository
	roots   repository.RootRepository
	tasks   repository.TaskRepository
	matcher *Matcher
}

func NewFieldUsecase(
	fields repository.FieldRepository,
	roots repository.RootRepository,
	tasks repository.TaskRepository,
	matcher *Matcher,
) FieldUsecase {
	return &fieldUsecase{fields: fields, roots: roots, tasks: tasks, matcher: matcher}
}

func (u *fieldUsecase) Resolve(ctx context.Context, description string) (*ResolveResult, error) {
	comp, err := u.compose(ctx, description)
	if err != nil {
		return nil, err
	}

	result := &ResolveResult{Composition: *comp}
	if comp.FullyMatched {
		return result, nil
	}

	task, err := u.tasks.Create(ctx, &entity.NotificationTask{
		Type: entity.TaskRootRequest,
		Payload: entity.TaskPayload{
			Description:    comp.CNName,
			SuggestedName:  comp.ENName,
			UnmatchedSpans: comp.UnmatchedSpans,
			Segments:       comp.Segments,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("enqueue root request: %w", err)
	}
	result.Task = task
	return result, nil
}

func (u *fieldUsecase) Create(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	norm, err := u.normalizeForUpsert(ctx, field)
	if err != nil {
		return nil, err
	}
	created, err := u.fields.Create(ctx, norm)
	if err != nil {
		return nil, err
	}
	if err := u.enqueueReview(ctx, created); err != nil {
		return created, err
	}
	return created, nil
}

func (u *fieldUsecase) Update(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	if field == nil || field.ID <= 0 {
		return nil, fmt.Errorf("%w: field id required", entity.ErrInvalidArgument)
	}
	norm, err := u.normalizeForUpsert(ctx, field)
	if err != nil {
		return nil, err
	}
	updated, err := u.fields.Update(ctx, norm)
	if err != nil {
		return nil, err
	}
	if err := u.enqueueReview(ctx, updated); err != nil {
		return updated, err
	}
	return updated, nil
}

func (u *fieldUsecase) Get(ctx context.Context, id int64) (*entity.FieldDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: field id required", entity.ErrInvalidArgument)
	}
	return u.fields.GetDetail(ctx, id)
}

func (u *fieldUsecase) List(ctx context.Context, query *repository.ListFieldQuery) ([]*entity.StandardField, int64, error) {
	if query == nil {
		query = &repository.ListFieldQuery{}
	}
	query.Normalize()
	return u.fields.List(ctx, query)
}

func (u *fieldUsecase) Search(ctx context.Context, keyword string, limit int32) ([]*entity.StandardField, error) {
	keyword = entity.NormalizeTerm(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword required", entity.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = _defaultSearchLimit
	}
	if limit > _maxSearchLimit {
		limit = _maxSearchLimit
	}
	return u.fields.Search(ctx, keyword, limit)
}

func (u *fieldUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: field id required", entity.ErrInvalidArgument)
	}
	return u.fields.Delete(ctx, id)
}

func (u *fieldUsecase) DeleteAll(ctx context.Context) error {
	return u.fields.DeleteAll(ctx)
}

func (u *fieldUsecase) compose(ctx context.Context, description string) (*entity.Composition, error) {
	dict, err := u.roots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot dictionary: %w", err)
	}
	segments, err := u.matcher.Match(dict, description)
	if err != nil {
		return nil, err
	}
	comp := Compose(description, segments)
	return &comp, nil
}

// normalizeForUpsert validates the field, composing en_name and the chain
// from the current dictionary when the caller supplied none. New and updated
// rows always land as candidates: is_standard only flips through review.
func (u *fieldUsecase) normalizeForUpsert(ctx context.Context, in *entity.StandardField) (*entity.StandardField, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: field payload required", entity.ErrInvalidArgument)
	}
	out := *in
	out.Synonyms = entity.TermSet(append([]string(nil), in.Synonyms...))
	out.CompositionIDs = append([]int64(nil), in.CompositionIDs...)
	out.Normalize()
	if out.CNName == "" {
		return nil, fmt.Errorf("%w: cn_name is required", entity.ErrInvalidField)
	}

	if out.ENName == "" {
		comp, err := u.compose(ctx, out.CNName)
		if err != nil {
			return nil, err
		}
		out.ENName = comp.ENName
		out.CompositionIDs = comp.CompositionIDs
		if out.DataType == "" {
			out.DataType = comp.DataType
		}
	}

	out.IsStandard = false
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *fieldUsecase) enqueueReview(ctx context.Context, field *entity.StandardField) error {
	_, err := u.tasks.Create(ctx, &entity.NotificationTask{
		Type: entity.TaskFieldUpdate,
		Payload: entity.TaskPayload{
			FieldID:     field.ID,
			FieldCNName: field.CNName,
			FieldENName: field.ENName,
		},
	})
	if err != nil {
		return fmt.Errorf("enqueue field review: %w", err)
	}
	return nil
}
