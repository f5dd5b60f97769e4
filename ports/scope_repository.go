package ports

import (
	"context"

	"escopo/domain/scope"
)

// ScopeRepository persists normalized scope-and-sequence items grouped by
// education level. The level label is opaque to the ingestion core; it exists
// only so uploads replace the right group.
type ScopeRepository interface {
	// ReplaceForLevel atomically swaps every stored item for the level with
	// the given set. Full replacement is the contract: re-uploading a
	// corrected file must leave no stale rows from the previous upload.
	ReplaceForLevel(ctx context.Context, level string, items []scope.ScopeSequenceItem) error

	// ListByLevel returns stored items for a level in insertion order,
	// optionally filtered to one subject (empty subject means all).
	ListByLevel(ctx context.Context, level, subject string) ([]scope.ScopeSequenceItem, error)

	// CountByLevel returns per-subject item counts for a level.
	CountByLevel(ctx context.Context, level string) (map[string]int, error)

	// Levels returns every level label that currently has stored items.
	Levels(ctx context.Context) ([]string, error)
}
