package ingest

import (
	"log"
	"strings"
	"time"

	"escopo/domain/core"
	"escopo/domain/scope"
)

// indexSheetName is the conventional table-of-contents tab; it never holds
// curriculum rows.
const indexSheetName = "índice"

// Sheet is the pipeline's view of one worksheet: the tab name (which becomes
// the subject of every item it yields) and the raw cell grid.
type Sheet struct {
	Name string
	Rows [][]string
}

// Pipeline runs header location, column mapping and row normalization across
// a workbook. It holds no per-call state; one instance serves any number of
// ingestions.
type Pipeline struct {
	table   SynonymTable
	locator LocatorConfig
}

// NewPipeline creates a pipeline with the given vocabulary and tuning.
func NewPipeline(table SynonymTable, locator LocatorConfig) *Pipeline {
	return &Pipeline{table: table, locator: locator}
}

// Run ingests every worksheet and returns the flat, ordered item list plus
// per-sheet outcomes. level is an opaque grouping label supplied by the
// caller; the pipeline stamps it on the report without interpreting it.
//
// Sheet-level failures (no header, missing mandatory columns) are absorbed
// into the report so one bad tab never aborts the workbook. Only the
// workbook-open stage upstream can fail the whole call.
func (p *Pipeline) Run(sheets []Sheet, level string) scope.IngestReport {
	start := time.Now()
	report := scope.IngestReport{
		UploadID:  core.UploadID(core.NewID()),
		StartedAt: core.NewTimestamp(start),
		Level:     level,
	}

	for _, sheet := range sheets {
		outcome := p.processSheet(sheet, &report.Items)
		report.Sheets = append(report.Sheets, outcome)
		report.RejectedRows += outcome.RejectedRows
		report.BlankRows += outcome.BlankRows

		switch outcome.Status {
		case scope.SheetNoHeader:
			log.Printf("[Pipeline] WARNING - sheet %q skipped: no header row found", sheet.Name)
		case scope.SheetMissingColumns:
			log.Printf("[Pipeline] WARNING - sheet %q skipped: missing columns %s",
				sheet.Name, strings.Join(outcome.MissingColumns, ", "))
		}
	}

	report.DurationMs = time.Since(start).Milliseconds()
	log.Printf("[Pipeline] Workbook processed: %d sheets, %d items, %d rows rejected (%dms)",
		len(sheets), len(report.Items), report.RejectedRows, report.DurationMs)
	return report
}

func (p *Pipeline) processSheet(sheet Sheet, items *[]scope.ScopeSequenceItem) scope.SheetOutcome {
	outcome := scope.SheetOutcome{
		SheetName: sheet.Name,
		HeaderRow: -1,
	}

	if strings.EqualFold(strings.TrimSpace(sheet.Name), indexSheetName) {
		outcome.Status = scope.SheetSkippedIndex
		return outcome
	}

	headerRow := LocateHeader(sheet.Rows, p.table, p.locator)
	if headerRow < 0 {
		outcome.Status = scope.SheetNoHeader
		return outcome
	}

	cols, missing := MapHeader(sheet.Rows[headerRow], p.table)
	if len(missing) > 0 {
		outcome.Status = scope.SheetMissingColumns
		outcome.MissingColumns = missing
		return outcome
	}

	outcome.Status = scope.SheetOK
	outcome.HeaderRow = headerRow

	for _, row := range sheet.Rows[headerRow+1:] {
		item, verdict := NormalizeRow(row, cols, sheet.Name)
		switch verdict {
		case RowAccepted:
			*items = append(*items, item)
			outcome.ItemCount++
		case RowRejected:
			outcome.RejectedRows++
		case RowBlank:
			outcome.BlankRows++
		}
	}
	return outcome
}
