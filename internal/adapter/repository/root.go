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

const rootColumns = `id, cn_name, en_abbr, en_full_name, associated_terms, data_type, remark, created_at, updated_at`

// rootsWhere coalesces optional filter params: an empty (or NULL) param
// disables its predicate. Argument order matches listRootsArgs.
const rootsWhere = `
	($1 = '' OR cn_name ILIKE '%' || $1 || '%' OR en_abbr ILIKE '%' || $1 || '%' OR associated_terms ILIKE '%' || $1 || '%')
	AND ($2 = '' OR cn_name = $2)
	AND ($3 = '' OR en_abbr = $3)
	AND ($4 = '' OR en_abbr LIKE $4 || '%')
	AND ($5 = '' OR (',' || associated_terms || ',') LIKE '%,' || $5 || ',%')
	AND ($6 = '' OR data_type = $6)
	AND ($7::timestamptz IS NULL OR created_at >= $7)
	AND ($8::timestamptz IS NULL OR created_at <= $8)`

type rootRepository struct{ pool *pgxpool.Pool }

func NewRootRepository(pool *pgxpool.Pool) repository.RootRepository {
	return &rootRepository{pool: pool}
}

func (r *rootRepository) Create(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return insertRoot(ctx, r.pool, root)
}

func (r *rootRepository) CreateBatch(ctx context.Context, roots []*entity.WordRoot) ([]*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created := make([]*entity.WordRoot, 0, len(roots))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, root := range roots {
			row, err := insertRoot(ctx, tx, root)
			if err != nil {
				return fmt.Errorf("insert root %q: %w", root.ENAbbr, err)
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *rootRepository) Update(ctx context.Context, root *entity.WordRoot) (*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE standard_word_roots
		SET cn_name = $2, en_abbr = $3, en_full_name = $4, associated_terms = $5, data_type = $6, remark = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+rootColumns,
		root.ID, root.CNName, root.ENAbbr, root.ENFullName, root.Synonyms.Join(), root.DataType, root.Remark)
	updated, err := scanRoot(row)
	if err != nil {
		return nil, translateRootError(err)
	}
	return updated, nil
}

func (r *rootRepository) GetByID(ctx context.Context, id int64) (*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+rootColumns+` FROM standard_word_roots WHERE id = $1`, id)
	root, err := scanRoot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrRootNotFound
		}
		return nil, fmt.Errorf("get root: %w", err)
	}
	return root, nil
}

func (r *rootRepository) Lookup(ctx context.Context, term string) (*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+rootColumns+`
		FROM standard_word_roots
		WHERE cn_name = $1 OR (',' || associated_terms || ',') LIKE '%,' || $1 || ',%'
		ORDER BY (cn_name = $1) DESC, id ASC
		LIMIT 1`, term)
	root, err := scanRoot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup root: %w", err)
	}
	return root, nil
}

type listRootsParams struct {
	Keyword       string
	CNName        string
	ENAbbr        string
	ENAbbrPrefix  string
	Synonym       string
	DataType      string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (p listRootsParams) args() []any {
	return []any{
		p.Keyword, p.CNName, p.ENAbbr, p.ENAbbrPrefix, p.Synonym, p.DataType,
		timestamptz(p.CreatedAfter), timestamptz(p.CreatedBefore),
	}
}

func (r *rootRepository) List(ctx context.Context, query *repository.ListRootQuery) ([]*entity.WordRoot, int64, error) {
	var p listRootsParams
	if err := filterexpr.Bind(query, &p, listRootsSchema); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err)
	}

	order := orderBySQL(listRootsSchema.Order.Fields, p.PrimaryKey, p.PrimaryDesc, p.SecondaryKey, p.SecondaryDesc)
	args := append(p.args(), query.PageSize, query.Offset())
	rows, err := r.pool.Query(ctx, `
		SELECT `+rootColumns+`
		FROM standard_word_roots
		WHERE `+rootsWhere+`
		ORDER BY `+order+`
		LIMIT $9 OFFSET $10`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roots: %w", err)
	}
	defer rows.Close()

	roots := make([]*entity.WordRoot, 0, query.PageSize)
	for rows.Next() {
		root, err := scanRoot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan root: %w", err)
		}
		roots = append(roots, root)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list roots: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM standard_word_roots WHERE `+rootsWhere, p.args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roots: %w", err)
	}
	return roots, total, nil
}

func (r *rootRepository) SearchSimilar(ctx context.Context, term string, limit int32) ([]*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+rootColumns+`, GREATEST(similarity(cn_name, $1), similarity(associated_terms, $1)) AS sim
		FROM standard_word_roots
		WHERE cn_name % $1 OR associated_terms % $1
		ORDER BY sim DESC, id ASC
		LIMIT $2`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar roots: %w", err)
	}
	defer rows.Close()

	roots := make([]*entity.WordRoot, 0, limit)
	for rows.Next() {
		var (
			root  entity.WordRoot
			terms string
			sim   float32
		)
		if err := rows.Scan(&root.ID, &root.CNName, &root.ENAbbr, &root.ENFullName, &terms,
			&root.DataType, &root.Remark, &root.CreatedAt, &root.UpdatedAt, &sim); err != nil {
			return nil, fmt.Errorf("scan similar root: %w", err)
		}
		root.Synonyms = entity.ParseTermSet(terms)
		roots = append(roots, &root)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search similar roots: %w", err)
	}
	return roots, nil
}

func (r *rootRepository) Snapshot(ctx context.Context) (*entity.Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+rootColumns+` FROM standard_word_roots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot roots: %w", err)
	}
	defer rows.Close()

	var roots []entity.WordRoot
	for rows.Next() {
		root, err := scanRoot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan root: %w", err)
		}
		roots = append(roots, *root)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot roots: %w", err)
	}
	return entity.NewDictionary(roots), nil
}

// Delete removes an unreferenced root. The reference check and the delete run
// as one statement, so a concurrent field save cannot slip between them.
func (r *rootRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM standard_word_roots w
		WHERE w.id = $1
		  AND NOT EXISTS (SELECT 1 FROM standard_fields f WHERE f.composition_ids @> ARRAY[w.id])`, id)
	if err != nil {
		return fmt.Errorf("delete root: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM standard_word_roots WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("classify root delete: %w", err)
		}
		if exists {
			return entity.ErrRootReferenced
		}
		return entity.ErrRootNotFound
	}
	return nil
}

func (r *rootRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM standard_word_roots WHERE NOT EXISTS (SELECT 1 FROM standard_fields)`)
	if err != nil {
		return fmt.Errorf("clear roots: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM standard_word_roots)`).Scan(&exists); err != nil {
			return fmt.Errorf("classify roots clear: %w", err)
		}
		if exists {
			return entity.ErrRootReferenced
		}
	}
	return nil
}

func insertRoot(ctx context.Context, q querier, root *entity.WordRoot) (*entity.WordRoot, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO standard_word_roots (cn_name, en_abbr, en_full_name, associated_terms, data_type, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING `+rootColumns,
		root.CNName, root.ENAbbr, root.ENFullName, root.Synonyms.Join(), root.DataType, root.Remark)
	created, err := scanRoot(row)
	if err != nil {
		return nil, translateRootError(err)
	}
	return created, nil
}

func scanRoot(row pgx.Row) (*entity.WordRoot, error) {
	var (
		root  entity.WordRoot
		terms string
	)
	if err := row.Scan(&root.ID, &root.CNName, &root.ENAbbr, &root.ENFullName, &terms,
		&root.DataType, &root.Remark, &root.CreatedAt, &root.UpdatedAt); err != nil {
		return nil, err
	}
	root.Synonyms = entity.ParseTermSet(terms)
	return &root, nil
}

func translateRootError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicateAbbr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrRootNotFound
	}
	return err
}
