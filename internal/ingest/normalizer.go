package ingest

import (
	"regexp"
	"strings"

	"escopo/domain/scope"
)

var digitRun = regexp.MustCompile(`\d+`)

// ExtractNumber reduces a free-text cell to its first contiguous run of
// ASCII digits: "8º ano" -> "8", "Bimestre nº 2 - revisado" -> "2". Cells
// with no digits yield "". Multi-number cells ("6 e 7") keep only the first
// run; that truncation matches how the curriculum files are produced and is
// intentional, not a bug to fix here.
func ExtractNumber(cell string) string {
	return digitRun.FindString(cell)
}

// RowVerdict classifies a single data row.
type RowVerdict int

const (
	RowAccepted RowVerdict = iota
	RowRejected            // mandatory field empty after extraction
	RowBlank               // every cell empty; ignored without counting as rejected
)

// NormalizeRow builds one ScopeSequenceItem from a data row. subject is the
// worksheet name and is stamped onto the item as-is; it is never read from a
// cell.
func NormalizeRow(row []string, cols ColumnMap, subject string) (scope.ScopeSequenceItem, RowVerdict) {
	if rowIsBlank(row) {
		return scope.ScopeSequenceItem{}, RowBlank
	}

	item := scope.ScopeSequenceItem{
		Subject:         strings.TrimSpace(subject),
		YearOrGrade:     ExtractNumber(cellAt(row, cols, scope.FieldYearOrGrade)),
		Term:            ExtractNumber(cellAt(row, cols, scope.FieldTerm)),
		SkillCode:       strings.TrimSpace(cellAt(row, cols, scope.FieldSkill)),
		KnowledgeObject: strings.TrimSpace(cellAt(row, cols, scope.FieldKnowledgeObject)),
		Content:         strings.TrimSpace(cellAt(row, cols, scope.FieldContent)),
	}
	if cols.HasObjectives() {
		item.Objectives = strings.TrimSpace(cellAt(row, cols, scope.FieldObjectives))
	}

	if !item.Complete() {
		return scope.ScopeSequenceItem{}, RowRejected
	}
	return item, RowAccepted
}

// cellAt reads the mapped cell, tolerating short rows: excelize trims
// trailing blanks, so a row can legitimately end before a mapped column.
func cellAt(row []string, cols ColumnMap, field scope.Field) string {
	idx, ok := cols.Index(field)
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
