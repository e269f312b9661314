package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eslsoft/datastd/pkg/filterexpr"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// repository method can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// orderBySQL renders the ORDER BY clause for keys already validated against
// the resource's order schema. Only whitelisted expressions reach the SQL.
func orderBySQL(fields map[string]filterexpr.OrderField, primaryKey string, primaryDesc bool, secondaryKey string, secondaryDesc bool) string {
	clause := func(key string, desc bool) string {
		expr := fields[key].Expr
		if desc {
			return expr + " DESC"
		}
		return expr + " ASC"
	}
	return clause(primaryKey, primaryDesc) + ", " + clause(secondaryKey, secondaryDesc)
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}
