package ingest

import (
	"testing"

	"escopo/domain/scope"
)

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"8º ano", "8"},
		{"6º ano", "6"},
		{"1º Bimestre", "1"},
		{"Bimestre nº 2 - revisado", "2"},
		{"Bimestre 2", "2"},
		{"", ""},
		{"sem número", ""},
		{"   ", ""},
		// First digit run only; multi-value cells are truncated on purpose.
		{"6 e 7", "6"},
		{"12º ano", "12"},
	}

	for _, tc := range cases {
		if got := ExtractNumber(tc.input); got != tc.expected {
			t.Errorf("ExtractNumber(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func testColumnMap(t *testing.T, header []string) ColumnMap {
	t.Helper()
	cols, missing := MapHeader(header, DefaultSynonyms())
	if len(missing) > 0 {
		t.Fatalf("test header unexpectedly missing columns: %v", missing)
	}
	return cols
}

func fullHeader() []string {
	return []string{"Ano/Série", "Bimestre", "Habilidade", "Objetos do Conhecimento", "Conteudo"}
}

func TestNormalizeRow_Accepted(t *testing.T) {
	cols := testColumnMap(t, fullHeader())

	row := []string{"6º ano", "1º Bimestre", "EF06CI01", "Matéria e energia", "Propriedades físicas"}
	item, verdict := NormalizeRow(row, cols, "Ciências")

	if verdict != RowAccepted {
		t.Fatalf("Expected RowAccepted, got %v", verdict)
	}

	expected := scope.ScopeSequenceItem{
		Subject:         "Ciências",
		YearOrGrade:     "6",
		Term:            "1",
		SkillCode:       "EF06CI01",
		KnowledgeObject: "Matéria e energia",
		Content:         "Propriedades físicas",
	}
	if item != expected {
		t.Errorf("Normalized item = %+v, expected %+v", item, expected)
	}
	if item.HasObjectives() {
		t.Errorf("Expected objectives absent when the column is not mapped")
	}
}

func TestNormalizeRow_RejectsMissingMandatory(t *testing.T) {
	cols := testColumnMap(t, fullHeader())

	// Knowledge object empty: everything else present, row still rejected.
	row := []string{"6º ano", "1º Bimestre", "EF06CI01", "   ", "Propriedades físicas"}
	if _, verdict := NormalizeRow(row, cols, "Ciências"); verdict != RowRejected {
		t.Errorf("Expected RowRejected for empty knowledge object, got %v", verdict)
	}

	// Year cell with no digits rejects too.
	row = []string{"sexto ano", "1º Bimestre", "EF06CI01", "Matéria e energia", "Propriedades físicas"}
	if _, verdict := NormalizeRow(row, cols, "Ciências"); verdict != RowRejected {
		t.Errorf("Expected RowRejected for digit-less year cell, got %v", verdict)
	}
}

func TestNormalizeRow_BlankRowIgnored(t *testing.T) {
	cols := testColumnMap(t, fullHeader())

	if _, verdict := NormalizeRow([]string{"", "  ", "", "", ""}, cols, "Ciências"); verdict != RowBlank {
		t.Errorf("Expected RowBlank for all-empty row, got %v", verdict)
	}
	if _, verdict := NormalizeRow([]string{}, cols, "Ciências"); verdict != RowBlank {
		t.Errorf("Expected RowBlank for zero-length row, got %v", verdict)
	}
}

func TestNormalizeRow_ShortRowTreatedAsMissing(t *testing.T) {
	cols := testColumnMap(t, fullHeader())

	// excelize drops trailing blank cells, so the content column may simply
	// not be there. That is a rejection, not a panic.
	row := []string{"6º ano", "1º Bimestre", "EF06CI01"}
	if _, verdict := NormalizeRow(row, cols, "Ciências"); verdict != RowRejected {
		t.Errorf("Expected RowRejected for short row, got %v", verdict)
	}
}

func TestNormalizeRow_OptionalObjectives(t *testing.T) {
	header := append(fullHeader(), "OBJETIVOS")
	cols := testColumnMap(t, header)

	row := []string{"6º ano", "1", "EF06CI01", "Matéria e energia", "Propriedades físicas", "  Reconhecer propriedades  "}
	item, verdict := NormalizeRow(row, cols, "Ciências")
	if verdict != RowAccepted {
		t.Fatalf("Expected RowAccepted, got %v", verdict)
	}
	if item.Objectives != "Reconhecer propriedades" {
		t.Errorf("Objectives = %q, expected trimmed text", item.Objectives)
	}

	// Empty objectives cell keeps the row and omits the field.
	row = []string{"6º ano", "1", "EF06CI01", "Matéria e energia", "Propriedades físicas", ""}
	item, verdict = NormalizeRow(row, cols, "Ciências")
	if verdict != RowAccepted {
		t.Fatalf("Expected RowAccepted with empty objectives, got %v", verdict)
	}
	if item.HasObjectives() {
		t.Errorf("Expected objectives omitted for empty cell, got %q", item.Objectives)
	}
}

func TestNormalizeRow_SubjectComesFromSheetName(t *testing.T) {
	// A column literally named like a subject must not override the tab name.
	cols := testColumnMap(t, fullHeader())

	row := []string{"9º ano", "4º Bimestre", "EF09MA01", "Números reais", "Potências"}
	item, verdict := NormalizeRow(row, cols, "  Matemática  ")
	if verdict != RowAccepted {
		t.Fatalf("Expected RowAccepted, got %v", verdict)
	}
	if item.Subject != "Matemática" {
		t.Errorf("Subject = %q, expected trimmed sheet name", item.Subject)
	}
}
