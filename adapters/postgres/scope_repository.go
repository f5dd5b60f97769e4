package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"escopo/domain/core"
	"escopo/domain/scope"
	"escopo/ports"
)

// scopeRepository implements the ScopeRepository interface
type scopeRepository struct {
	db *sqlx.DB
}

// NewScopeRepository creates a new scope repository
func NewScopeRepository(db *sqlx.DB) ports.ScopeRepository {
	return &scopeRepository{db: db}
}

// scopeItemRow mirrors the scope_sequence_items table for sqlx scanning.
type scopeItemRow struct {
	Subject         string         `db:"subject"`
	YearGrade       string         `db:"year_grade"`
	Term            string         `db:"term"`
	SkillCode       string         `db:"skill_code"`
	KnowledgeObject string         `db:"knowledge_object"`
	Content         string         `db:"content"`
	Objectives      sql.NullString `db:"objectives"`
}

// ReplaceForLevel swaps every stored item for the level inside one
// transaction. Delete-then-insert keeps the contract simple: after a commit
// the level holds exactly the uploaded set, nothing from earlier uploads.
func (r *scopeRepository) ReplaceForLevel(ctx context.Context, level string, items []scope.ScopeSequenceItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scope_sequence_items WHERE level = $1`, level); err != nil {
		return fmt.Errorf("failed to clear level %s: %w", level, err)
	}

	insert := `INSERT INTO scope_sequence_items (
		id, level, position, subject, year_grade, term, skill_code, knowledge_object, content, objectives
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for pos, item := range items {
		var objectives sql.NullString
		if item.HasObjectives() {
			objectives = sql.NullString{String: item.Objectives, Valid: true}
		}

		_, err := tx.ExecContext(ctx, insert,
			core.NewID().String(), level, pos,
			item.Subject, item.YearOrGrade, item.Term,
			item.SkillCode, item.KnowledgeObject, item.Content, objectives,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %d for level %s: %w", pos, level, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace for level %s: %w", level, err)
	}
	return nil
}

// ListByLevel returns stored items in upload order, optionally filtered by subject.
func (r *scopeRepository) ListByLevel(ctx context.Context, level, subject string) ([]scope.ScopeSequenceItem, error) {
	query := `SELECT subject, year_grade, term, skill_code, knowledge_object, content, objectives
		FROM scope_sequence_items WHERE level = $1`
	args := []interface{}{level}
	if subject != "" {
		query += ` AND subject = $2`
		args = append(args, subject)
	}
	query += ` ORDER BY position`

	var rows []scopeItemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list items for level %s: %w", level, err)
	}

	items := make([]scope.ScopeSequenceItem, 0, len(rows))
	for _, row := range rows {
		item := scope.ScopeSequenceItem{
			Subject:         row.Subject,
			YearOrGrade:     row.YearGrade,
			Term:            row.Term,
			SkillCode:       row.SkillCode,
			KnowledgeObject: row.KnowledgeObject,
			Content:         row.Content,
		}
		if row.Objectives.Valid {
			item.Objectives = row.Objectives.String
		}
		items = append(items, item)
	}
	return items, nil
}

// CountByLevel returns per-subject item counts for a level.
func (r *scopeRepository) CountByLevel(ctx context.Context, level string) (map[string]int, error) {
	query := `SELECT subject, COUNT(*) AS n FROM scope_sequence_items
		WHERE level = $1 GROUP BY subject ORDER BY subject`

	rows, err := r.db.QueryContext(ctx, query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to count items for level %s: %w", level, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var subject string
		var n int
		if err := rows.Scan(&subject, &n); err != nil {
			return nil, fmt.Errorf("failed to scan subject count: %w", err)
		}
		counts[subject] = n
	}
	return counts, rows.Err()
}

// Levels returns every level label with stored items.
func (r *scopeRepository) Levels(ctx context.Context) ([]string, error) {
	var levels []string
	err := r.db.SelectContext(ctx, &levels,
		`SELECT DISTINCT level FROM scope_sequence_items ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}
