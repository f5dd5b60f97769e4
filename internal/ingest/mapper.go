package ingest

import (
	"sort"

	"escopo/domain/scope"
)

// ColumnMap holds the resolved column index per canonical field for one
// sheet. Mandatory fields are always present after a successful MapHeader;
// the optional objectives column may be absent.
type ColumnMap struct {
	indexes map[scope.Field]int
}

// Index returns the column index for a field and whether it was mapped.
func (m ColumnMap) Index(field scope.Field) (int, bool) {
	idx, ok := m.indexes[field]
	return idx, ok
}

// HasObjectives reports whether the sheet carries the optional column.
func (m ColumnMap) HasObjectives() bool {
	_, ok := m.indexes[scope.FieldObjectives]
	return ok
}

// MapHeader resolves each canonical field to its column index in the header
// row, first matching cell wins. The second return value names the mandatory
// fields with no matching column; the mapping is only usable when it is empty.
func MapHeader(header []string, table SynonymTable) (ColumnMap, []string) {
	indexes := make(map[scope.Field]int)
	for col, cell := range header {
		field, ok := table.FieldFor(cell)
		if !ok {
			continue
		}
		if _, taken := indexes[field]; taken {
			continue
		}
		indexes[field] = col
	}

	var missing []string
	for _, field := range scope.MandatoryFields() {
		if _, ok := indexes[field]; !ok {
			missing = append(missing, field.String())
		}
	}
	sort.Strings(missing)

	return ColumnMap{indexes: indexes}, missing
}
