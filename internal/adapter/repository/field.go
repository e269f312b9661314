package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/repository"
	"github.com/eslsoft/datastd/pkg/filterexpr"
)

const fieldColumns = `id, field_cn_name, field_en_name, composition_ids, data_type, is_standard, associated_terms, remark, created_at, updated_at`

const fieldsWhere = `
	($1 = '' OR field_cn_name ILIKE '%' || $1 || '%' OR field_en_name ILIKE '%' || $1 || '%' OR associated_terms ILIKE '%' || $1 || '%')
	AND ($2 = '' OR field_cn_name = $2)
	AND ($3 = '' OR field_en_name = $3)
	AND ($4 = '' OR field_en_name LIKE $4 || '%')
	AND ($5::boolean IS NULL OR is_standard = $5)
	AND ($6::timestamptz IS NULL OR created_at >= $6)
	AND ($7::timestamptz IS NULL OR created_at <= $7)`

type fieldRepository struct{ pool *pgxpool.Pool }

func NewFieldRepository(pool *pgxpool.Pool) repository.FieldRepository {
	return &fieldRepository{pool: pool}
}

func (r *fieldRepository) Create(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO standard_fields (field_cn_name, field_en_name, composition_ids, data_type, is_standard, associated_terms, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING `+fieldColumns,
		field.CNName, field.ENName, int8Array(field.CompositionIDs), field.DataType,
		field.IsStandard, field.Synonyms.Join(), field.Remark)
	created, err := scanField(row)
	if err != nil {
		return nil, translateFieldError(err)
	}
	return created, nil
}

func (r *fieldRepository) Update(ctx context.Context, field *entity.StandardField) (*entity.StandardField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE standard_fields
		SET field_cn_name = $2, field_en_name = $3, composition_ids = $4, data_type = $5, is_standard = $6, associated_terms = $7, remark = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+fieldColumns,
		field.ID, field.CNName, field.ENName, int8Array(field.CompositionIDs), field.DataType,
		field.IsStandard, field.Synonyms.Join(), field.Remark)
	updated, err := scanField(row)
	if err != nil {
		return nil, translateFieldError(err)
	}
	return updated, nil
}

func (r *fieldRepository) GetByID(ctx context.Context, id int64) (*entity.StandardField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+fieldColumns+` FROM standard_fields WHERE id = $1`, id)
	field, err := scanField(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFieldNotFound
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	return field, nil
}

func (r *fieldRepository) GetDetail(ctx context.Context, id int64) (*entity.FieldDetail, error) {
	field, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &entity.FieldDetail{Field: *field}
	if len(field.CompositionIDs) == 0 {
		return detail, nil
	}

	// UNNEST WITH ORDINALITY keeps the chain in composition order and
	// silently drops dangling IDs.
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.cn_name, r.en_abbr, r.en_full_name, r.associated_terms, r.data_type, r.remark, r.created_at, r.updated_at
		FROM UNNEST($1::bigint[]) WITH ORDINALITY AS x(id, ord)
		JOIN standard_word_roots r ON r.id = x.id
		ORDER BY x.ord`, field.CompositionIDs)
	if err != nil {
		return nil, fmt.Errorf("load composition chain: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		root, err := scanRoot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chain root: %w", err)
		}
		detail.Chain = append(detail.Chain, *root)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load composition chain: %w", err)
	}
	return detail, nil
}

type listFieldsParams struct {
	Keyword       string
	CNName        string
	ENName        string
	ENNamePrefix  string
	IsStandard    *bool
	CreatedAfter  time.Time
	CreatedBefore time.Time
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (p listFieldsParams) args() []any {
	return []any{
		p.Keyword, p.CNName, p.ENName, p.ENNamePrefix, p.IsStandard,
		timestamptz(p.CreatedAfter), timestamptz(p.CreatedBefore),
	}
}

func (r *fieldRepository) List(ctx context.Context, query *repository.ListFieldQuery) ([]*entity.StandardField, int64, error) {
	var p listFieldsParams
	if err := filterexpr.Bind(query, &p, listFieldsSchema); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err)
	}

	order := orderBySQL(listFieldsSchema.Order.Fields, p.PrimaryKey, p.PrimaryDesc, p.SecondaryKey, p.SecondaryDesc)
	args := append(p.args(), query.PageSize, query.Offset())
	rows, err := r.pool.Query(ctx, `
		SELECT `+fieldColumns+`
		FROM standard_fields
		WHERE `+fieldsWhere+`
		ORDER BY `+order+`
		LIMIT $8 OFFSET $9`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	fields := make([]*entity.StandardField, 0, query.PageSize)
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list fields: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM standard_fields WHERE `+fieldsWhere, p.args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fields: %w", err)
	}
	return fields, total, nil
}

func (r *fieldRepository) Search(ctx context.Context, keyword string, limit int32) ([]*entity.StandardField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, err := r.collectFields(ctx, `
		SELECT `+fieldColumns+`
		FROM standard_fields
		WHERE field_cn_name ILIKE '%' || $1 || '%' OR field_en_name ILIKE '%' || $1 || '%' OR associated_terms ILIKE '%' || $1 || '%'
		ORDER BY id ASC
		LIMIT $2`, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("search fields: %w", err)
	}
	if len(fields) > 0 {
		return fields, nil
	}

	// No substring hit; fall back to trigram similarity so near-miss
	// descriptions still find their registered fields.
	fields, err = r.collectFields(ctx, `
		SELECT `+fieldColumns+`
		FROM standard_fields
		WHERE field_cn_name % $1 OR associated_terms % $1
		ORDER BY GREATEST(similarity(field_cn_name, $1), similarity(associated_terms, $1)) DESC, id ASC
		LIMIT $2`, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("search fields by similarity: %w", err)
	}
	return fields, nil
}

func (r *fieldRepository) collectFields(ctx context.Context, sql string, args ...any) ([]*entity.StandardField, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []*entity.StandardField
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}

func (r *fieldRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM standard_fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrFieldNotFound
	}
	return nil
}

func (r *fieldRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM standard_fields`); err != nil {
		return fmt.Errorf("clear fields: %w", err)
	}
	return nil
}

func scanField(row pgx.Row) (*entity.StandardField, error) {
	var (
		field entity.StandardField
		terms string
	)
	if err := row.Scan(&field.ID, &field.CNName, &field.ENName, &field.CompositionIDs, &field.DataType,
		&field.IsStandard, &terms, &field.Remark, &field.CreatedAt, &field.UpdatedAt); err != nil {
		return nil, err
	}
	field.Synonyms = entity.ParseTermSet(terms)
	return &field, nil
}

// int8Array never hands a NULL array to the non-nullable composition column.
func int8Array(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func translateFieldError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicateFieldName
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrFieldNotFound
	}
	return err
}
