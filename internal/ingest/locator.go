package ingest

import (
	"strings"

	"escopo/domain/scope"
)

// LocatorConfig tunes header-row detection. The defaults mirror what the
// hand-maintained curriculum files actually need: headers float within the
// first few rows and at least three of the five mandatory columns must be
// recognizable before a row is trusted.
type LocatorConfig struct {
	SearchWindow int // rows scanned from the top of the sheet
	MinMatches   int // distinct mandatory fields a row must match
}

// DefaultLocatorConfig returns the tuning observed to work on real files.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		SearchWindow: 10,
		MinMatches:   3,
	}
}

// LocateHeader returns the index of the first row within the search window
// that matches at least MinMatches distinct mandatory fields, or -1 when no
// row qualifies. Rows of only blank cells are never candidates.
func LocateHeader(rows [][]string, table SynonymTable, cfg LocatorConfig) int {
	limit := cfg.SearchWindow
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		if rowIsBlank(rows[i]) {
			continue
		}
		if countFieldMatches(rows[i], table) >= cfg.MinMatches {
			return i
		}
	}
	return -1
}

// countFieldMatches counts distinct mandatory fields found in the row. A
// duplicated header cell ("Ano", "Ano") still counts once.
func countFieldMatches(row []string, table SynonymTable) int {
	found := make(map[scope.Field]bool)
	for _, cell := range row {
		for _, field := range scope.MandatoryFields() {
			if !found[field] && table.Matches(field, cell) {
				found[field] = true
			}
		}
	}
	return len(found)
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
