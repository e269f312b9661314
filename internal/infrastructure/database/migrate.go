package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/datastd/internal/infrastructure/config"
)

// OpenSQL opens a database/sql handle for the configured driver. The pgx pool
// serves request traffic; this handle backs migrations and backups, which run
// on both postgres and sqlite3.
func OpenSQL(cfg *config.Config) (*sql.DB, string, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, "", nil, fmt.Errorf("determine database driver: %w", err)
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, "", nil, fmt.Errorf("determine database dsn: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", nil, fmt.Errorf("open sql db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", nil, fmt.Errorf("ping sql db: %w", err)
	}

	if driver == "sqlite3" {
		// The pragma is per-connection; a single pooled connection keeps it.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, "", nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	return db, driver, func() { _ = db.Close() }, nil
}

// RunMigrations creates or updates the schema of the configured database,
// including the trigram indexes that back similarity search on postgres.
func RunMigrations(ctx context.Context, cfg *config.Config) error {
	db, driver, cleanup, err := OpenSQL(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dialectName := dialect.Postgres
	if driver == "sqlite3" {
		dialectName = dialect.SQLite
	}

	migrate, err := schema.NewMigrate(entsql.OpenDB(dialectName, db))
	if err != nil {
		return fmt.Errorf("create migration engine: %w", err)
	}
	if err := migrate.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run schema migration: %w", err)
	}

	if driver == "postgres" {
		if err := ensureTrigramIndexes(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

// ensureTrigramIndexes installs pg_trgm and the GIN indexes behind the
// similarity() lookups. The ent engine cannot express operator-class indexes.
func ensureTrigramIndexes(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS wordroot_cn_name_trgm ON standard_word_roots USING gin (cn_name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS wordroot_associated_terms_trgm ON standard_word_roots USING gin (associated_terms gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS standardfield_field_cn_name_trgm ON standard_fields USING gin (field_cn_name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS standardfield_associated_terms_trgm ON standard_fields USING gin (associated_terms gin_trgm_ops)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply trigram index %q: %w", stmt, err)
		}
	}
	return nil
}
