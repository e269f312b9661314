package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
)

const (
	_defaultSimilarLimit = int32(10)
	_maxSimilarLimit     = int32(50)
)

// RootUsecase defines business logic for the word root dictionary.
type RootUsecase interface {
	Create(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error)
	CreateBatch(ctx context.Context, roots []*entity.WordRoot) ([]*entity.WordRoot, error)
	Update(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error)
	Get(ctx context.Context, id int64) (*entity.WordRoot, error)
	Lookup(ctx context.Context, term string) (*entity.WordRoot, error)
	List(ctx context.Context, query *repository.ListRootQuery) ([]*entity.WordRoot, int64, error)
	SearchSimilar(ctx context.Context, term string, limit int32) ([]*entity.WordRoot, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type rootUsecase struct {
	repo repository.RootRepository
}

func NewRootUsecase(repo repository.RootRepository) RootUsecase {
	return &rootUsecase{repo: repo}
}

func (u *rootUsecase) Create(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	norm, err := normalizeRootForUpsert(root)
	if err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, norm)
}

func (u *rootUsecase) CreateBatch(ctx context.Context, roots []*entity.WordRoot) ([]*entity.WordRoot, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: empty batch", entity.ErrInvalidArgument)
	}
	normalized := make([]*entity.WordRoot, 0, len(roots))
	seen := make(map[string]struct{}, len(roots))
	for i, root := range roots {
		norm, err := normalizeRootForUpsert(root)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		if _, dup := seen[norm.ENAbbr]; dup {
			return nil, fmt.Errorf("root %d (%s): %w", i, norm.ENAbbr, entity.ErrDuplicateAbbr)
		}
		seen[norm.ENAbbr] = struct{}{}
		normalized = append(normalized, norm)
	}
	return u.repo.CreateBatch(ctx, normalized)
}

func (u *rootUsecase) Update(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	norm, err := normalizeRootForUpsert(root)
	if err != nil {
		return nil, err
	}
	if norm.ID <= 0 {
		return nil, fmt.Errorf("%w: root id required", entity.ErrInvalidArgument)
	}
	return u.repo.Update(ctx, norm)
}

func (u *rootUsecase) Get(ctx context.Context, id int64) (*entity.WordRoot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: root id required", entity.ErrInvalidArgument)
	}
	return u.repo.GetByID(ctx, id)
}

func (u *rootUsecase) Lookup(ctx context.Context, term string) (*entity.WordRoot, error) {
	term = entity.NormalizeTerm(term)
	if term == "" {
		return nil, fmt.Errorf("%w: term required", entity.ErrInvalidArgument)
	}
	return u.repo.Lookup(ctx, term)
}

func (u *rootUsecase) List(ctx context.Context, query *repository.ListRootQuery) ([]*entity.WordRoot, int64, error) {
	if query == nil {
		query = &repository.ListRootQuery{}
	}
	query.Normalize()
	return u.repo.List(ctx, query)
}

func (u *rootUsecase) SearchSimilar(ctx context.Context, term string, limit int32) ([]*entity.WordRoot, error) {
	term = entity.NormalizeTerm(term)
	if term == "" {
		return nil, fmt.Errorf("%w: term required", entity.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = _defaultSimilarLimit
	}
	if limit > _maxSimilarLimit {
		limit = _maxSimilarLimit
	}
	return u.repo.SearchSimilar(ctx, term, limit)
}

func (u *rootUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: root id required", entity.ErrInvalidArgument)
	}
	return u.repo.Delete(ctx, id)
}

func (u *rootUsecase) DeleteAll(ctx context.Context) error {
	return u.repo.DeleteAll(ctx)
}

func normalizeRootForUpsert(in *entity.WordRoot) (*entity.WordRoot, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: root payload required", entity.ErrInvalidArgument)
	}
	out := *in
	out.Synonyms = entity.TermSet(append([]string(nil), in.Synonyms...))
	out.ENFullName = strings.TrimSpace(out.ENFullName)
	out.Normalize()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
