package app

import (
	"context"
	"log"

	"escopo/adapters/excel"
	"escopo/domain/scope"
	"escopo/internal/errors"
	"escopo/internal/ingest"
	"escopo/ports"
)

// IngestService runs the full upload path: open the workbook buffer, run the
// normalization pipeline, and replace the stored items for the level.
type IngestService struct {
	pipeline *ingest.Pipeline
	repo     ports.ScopeRepository
}

// NewIngestService creates an ingest service
func NewIngestService(pipeline *ingest.Pipeline, repo ports.ScopeRepository) *IngestService {
	return &IngestService{
		pipeline: pipeline,
		repo:     repo,
	}
}

// IngestWorkbook processes an uploaded workbook under the given education
// level. The only error it returns for a readable file is a persistence
// failure; sheet- and row-level problems ride inside the report.
//
// An empty result does not touch stored data: wiping a level because someone
// uploaded a broken file would be worse than asking them to retry, so the
// caller surfaces "0 items" and the previous upload stays live.
func (s *IngestService) IngestWorkbook(ctx context.Context, buf []byte, level string) (*scope.IngestReport, error) {
	if level == "" {
		return nil, errors.InvalidInput("education level is required")
	}

	sheets, err := excel.OpenWorkbook(buf)
	if err != nil {
		return nil, err
	}

	report := s.pipeline.Run(sheets, level)

	if len(report.Items) == 0 {
		log.Printf("[IngestService] Level %q: no valid rows found, stored items left untouched", level)
		return &report, nil
	}

	if err := s.repo.ReplaceForLevel(ctx, level, report.Items); err != nil {
		return nil, errors.Wrapf(err, "failed to persist %d items for level %s", len(report.Items), level)
	}

	log.Printf("[IngestService] Level %q: %d items stored (%d sheets, %d rows rejected)",
		level, len(report.Items), len(report.Sheets), report.RejectedRows)
	return &report, nil
}
