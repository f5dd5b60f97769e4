package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"escopo/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createScopeSequenceItemsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create scope_sequence_items table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createScopeSequenceItemsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS scope_sequence_items (
		id UUID PRIMARY KEY,
		level TEXT NOT NULL,
		position INTEGER NOT NULL,
		subject TEXT NOT NULL,
		year_grade TEXT NOT NULL,
		term TEXT NOT NULL,
		skill_code TEXT NOT NULL,
		knowledge_object TEXT NOT NULL,
		content TEXT NOT NULL,
		objectives TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_scope_items_level ON scope_sequence_items(level)`,
		`CREATE INDEX IF NOT EXISTS idx_scope_items_level_subject ON scope_sequence_items(level, subject)`,
		`CREATE INDEX IF NOT EXISTS idx_scope_items_level_position ON scope_sequence_items(level, position)`,
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
