package repository

import (
	"context"

	"github.com/eslsoft/datastd/internal/entity"
)

type ListRootQuery struct {
	Pagination
	FilterOrder
}

// RootRepository defines data access for the word root dictionary.
type RootRepository interface {
	Create(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error)
	// CreateBatch inserts all roots in one transaction; any duplicate
	// abbreviation aborts the whole batch.
	CreateBatch(ctx context.Context, roots []*entity.WordRoot) ([]*entity.WordRoot, error)
	Update(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error)
	GetByID(ctx context.Context, id int64) (*entity.WordRoot, error)
	// Lookup resolves a term against canonical names first, then synonyms.
	// It returns (nil, nil) when nothing matches.
	Lookup(ctx context.Context, term string) (*entity.WordRoot, error)
	List(ctx context.Context, query *ListRootQuery) ([]*entity.WordRoot, int64, error)
	// SearchSimilar orders roots by trigram similarity against term. The
	// storage backs this with an indexed similarity operator, not a scan.
	SearchSimilar(ctx context.Context, term string, limit int32) ([]*entity.WordRoot, error)
	// Snapshot loads the whole dictionary for one resolution request.
	Snapshot(ctx context.Context) (*entity.Dictionary, error)
	// Delete refuses with entity.ErrRootReferenced while any field's
	// composition chain references the root.
	Delete(ctx context.Context, id int64) error
	// DeleteAll clears the dictionary; it refuses while fields exist.
	DeleteAll(ctx context.Context) error
}
