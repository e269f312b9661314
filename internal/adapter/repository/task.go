package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/datastd/internal/entity"
	"github.com/eslsoft/datastd/internal/infrastructure/database/types"
	"github.com/eslsoft/datastd/internal/repository"
	"github.com/eslsoft/datastd/pkg/filterexpr"
)

const taskColumns = `id, task_type, payload, is_read, resolved_at, created_at`

const tasksWhere = `
	($1 = '' OR task_type = $1)
	AND ($2::text[] IS NULL OR task_type = ANY($2))
	AND ($3::boolean IS NULL OR is_read = $3)
	AND ($4::timestamptz IS NULL OR created_at >= $4)
	AND ($5::timestamptz IS NULL OR created_at <= $5)`

type taskRepository struct{ pool *pgxpool.Pool }

func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.NotificationTask) (*entity.NotificationTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notification_tasks (task_type, payload, is_read, resolved_at, created_at)
		VALUES ($1, $2, false, NULL, now())
		RETURNING `+taskColumns,
		task.Type, types.TaskPayload(task.Payload))
	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*entity.NotificationTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM notification_tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

type listTasksParams struct {
	TaskType      string
	TaskTypes     []string
	IsRead        *bool
	CreatedAfter  time.Time
	CreatedBefore time.Time
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (p listTasksParams) args() []any {
	return []any{
		p.TaskType, p.TaskTypes, p.IsRead,
		timestamptz(p.CreatedAfter), timestamptz(p.CreatedBefore),
	}
}

func (r *taskRepository) List(ctx context.Context, query *repository.ListTaskQuery) ([]*entity.NotificationTask, int64, error) {
	var p listTasksParams
	if err := filterexpr.Bind(query, &p, listTasksSchema); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrInvalidArgument, err)
	}

	order := orderBySQL(listTasksSchema.Order.Fields, p.PrimaryKey, p.PrimaryDesc, p.SecondaryKey, p.SecondaryDesc)
	args := append(p.args(), query.PageSize, query.Offset())
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM notification_tasks
		WHERE `+tasksWhere+`
		ORDER BY `+order+`
		LIMIT $6 OFFSET $7`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entity.NotificationTask, 0, query.PageSize)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM notification_tasks WHERE `+tasksWhere, p.args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *taskRepository) CountUnread(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notification_tasks WHERE NOT is_read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread tasks: %w", err)
	}
	return count, nil
}

func (r *taskRepository) MarkRead(ctx context.Context, id int64) (*entity.NotificationTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE notification_tasks
		SET is_read = true
		WHERE id = $1
		RETURNING `+taskColumns, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, fmt.Errorf("mark task read: %w", err)
	}
	return task, nil
}

func (r *taskRepository) Resolve(ctx context.Context, id int64) (*entity.NotificationTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resolveTask(ctx, r.pool, id)
}

func (r *taskRepository) ResolveAsNewRoot(ctx context.Context, id int64, root *entity.WordRoot) (*entity.WordRoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var created *entity.WordRoot
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		task, err := resolveTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if task.Type != entity.TaskRootRequest {
			return fmt.Errorf("%w: task %d is %s", entity.ErrInvalidTaskType, id, task.Type)
		}
		created, err = insertRoot(ctx, tx, root)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *taskRepository) ResolveAsApprovedField(ctx context.Context, id int64) (*entity.StandardField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var approved *entity.StandardField
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		task, err := resolveTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if task.Type != entity.TaskFieldUpdate {
			return fmt.Errorf("%w: task %d is %s", entity.ErrInvalidTaskType, id, task.Type)
		}
		if task.Payload.FieldID <= 0 {
			return fmt.Errorf("%w: task %d carries no field reference", entity.ErrInvalidTaskType, id)
		}

		row := tx.QueryRow(ctx, `SELECT `+fieldColumns+` FROM standard_fields WHERE id = $1 FOR UPDATE`, task.Payload.FieldID)
		field, err := scanField(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entity.ErrFieldNotFound
			}
			return fmt.Errorf("load field for approval: %w", err)
		}
		if field.HasPlaceholder() {
			return fmt.Errorf("%w: %s", entity.ErrFieldIncomplete, field.ENName)
		}

		row = tx.QueryRow(ctx, `
			UPDATE standard_fields
			SET is_standard = true, updated_at = now()
			WHERE id = $1
			RETURNING `+fieldColumns, field.ID)
		approved, err = scanField(row)
		if err != nil {
			return fmt.Errorf("approve field: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// resolveTask flips a pending task to its terminal state. The resolved_at
// guard makes resolution single-shot even under concurrent callers.
func resolveTask(ctx context.Context, q querier, id int64) (*entity.NotificationTask, error) {
	row := q.QueryRow(ctx, `
		UPDATE notification_tasks
		SET is_read = true, resolved_at = now()
		WHERE id = $1 AND resolved_at IS NULL
		RETURNING `+taskColumns, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, classifyResolveMiss(ctx, q, id)
		}
		return nil, fmt.Errorf("resolve task: %w", err)
	}
	return task, nil
}

func classifyResolveMiss(ctx context.Context, q querier, id int64) error {
	var resolved bool
	err := q.QueryRow(ctx, `SELECT resolved_at IS NOT NULL FROM notification_tasks WHERE id = $1`, id).Scan(&resolved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ErrTaskNotFound
		}
		return fmt.Errorf("classify task resolve: %w", err)
	}
	if resolved {
		return entity.ErrTaskResolved
	}
	return entity.ErrTaskNotFound
}

func scanTask(row pgx.Row) (*entity.NotificationTask, error) {
	var (
		task    entity.NotificationTask
		payload types.TaskPayload
	)
	if err := row.Scan(&task.ID, &task.Type, &payload, &task.IsRead, &task.ResolvedAt, &task.CreatedAt); err != nil {
		return nil, err
	}
	task.Payload = entity.TaskPayload(payload)
	return &task, nil
}
