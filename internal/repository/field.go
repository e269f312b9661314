package repository

import (
	"context"

	"github.com/eslsoft/datastd/internal/entity"
)

type ListFieldQuery struct {
	Pagination
	FilterOrder
}

// FieldRepository defines data access for the standard field registry.
type FieldRepository interface {
	Create(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error)
	Update(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error)
	GetByID(ctx context.Context, id int64) (*entity.StandardField, error)
	// GetDetail loads a field together with its composition chain, roots
	// ordered exactly as composition_ids orders them.
	GetDetail(ctx context.Context, id int64) (*entity.FieldDetail, error)
	List(ctx context.Context, query *ListFieldQuery) ([]*entity.StandardField, int64, error)
	// Search matches keyword against cn_name, en_name and synonyms,
	// falling back to trigram similarity when nothing matches directly.
	Search(ctx context.Context, keyword string, limit int32) ([]*entity.StandardField, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
