package ingest

import (
	_ "embed"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"escopo/domain/scope"
	"escopo/internal/errors"
)

//go:embed synonyms.yaml
var defaultSynonymsYAML []byte

// SynonymTable maps each canonical field to the header spellings that count
// as a match for it. The vocabulary is data, not logic: curriculum teams can
// swap it without touching the matcher.
type SynonymTable map[scope.Field][]string

// DefaultSynonyms returns the embedded Portuguese curriculum vocabulary.
func DefaultSynonyms() SynonymTable {
	table, err := parseSynonyms(defaultSynonymsYAML)
	if err != nil {
		// The embedded table is validated by tests; reaching this is a build defect.
		panic("ingest: embedded synonym table invalid: " + err.Error())
	}
	return table
}

// LoadSynonyms reads a synonym table from a YAML file, falling back to the
// embedded default when path is empty.
func LoadSynonyms(path string) (SynonymTable, error) {
	if path == "" {
		return DefaultSynonyms(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read synonym file %s", path)
	}
	return parseSynonyms(raw)
}

func parseSynonyms(raw []byte) (SynonymTable, error) {
	var doc map[string][]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse synonym table")
	}

	table := make(SynonymTable, len(doc))
	for key, spellings := range doc {
		table[scope.Field(key)] = spellings
	}

	for _, field := range scope.MandatoryFields() {
		if len(table[field]) == 0 {
			return nil, errors.ConfigInvalid("synonym table has no spellings for mandatory field " + field.String())
		}
	}
	return table, nil
}

// Matches reports whether a raw header cell identifies the given field.
// Cells are trimmed first; comparison uses Unicode case folding so "Conteúdo"
// and "CONTEÚDO" both hit.
func (t SynonymTable) Matches(field scope.Field, cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	for _, spelling := range t[field] {
		if strings.EqualFold(cell, spelling) {
			return true
		}
	}
	return false
}

// FieldFor returns the first canonical field the header cell matches, or
// false when it matches none.
func (t SynonymTable) FieldFor(cell string) (scope.Field, bool) {
	for _, field := range allFields() {
		if t.Matches(field, cell) {
			return field, true
		}
	}
	return "", false
}

func allFields() []scope.Field {
	return append(scope.MandatoryFields(), scope.FieldObjectives)
}
