package scope

import (
	"escopo/domain/core"
)

// ScopeSequenceItem is one normalized scope-and-sequence record. Subject comes
// from the worksheet name, never from a cell; YearOrGrade and Term hold the
// digits extracted from free-text cells ("6º ano" -> "6").
type ScopeSequenceItem struct {
	Subject         string `json:"disciplina"`
	YearOrGrade     string `json:"ano_serie"`
	Term            string `json:"bimestre"`
	SkillCode       string `json:"habilidade"`
	KnowledgeObject string `json:"objeto_conhecimento"`
	Content         string `json:"conteudo"`
	Objectives      string `json:"objetivos,omitempty"` // optional; empty means absent
}

// Complete reports whether every mandatory field is populated. Items failing
// this never leave the normalizer.
func (it ScopeSequenceItem) Complete() bool {
	return it.Subject != "" &&
		it.YearOrGrade != "" &&
		it.Term != "" &&
		it.SkillCode != "" &&
		it.KnowledgeObject != "" &&
		it.Content != ""
}

// HasObjectives reports whether the optional objectives column carried text.
func (it ScopeSequenceItem) HasObjectives() bool {
	return it.Objectives != ""
}

// SheetStatus classifies the outcome of processing one worksheet.
type SheetStatus string

const (
	SheetOK             SheetStatus = "ok"
	SheetSkippedIndex   SheetStatus = "skipped_index"
	SheetNoHeader       SheetStatus = "no_header"
	SheetMissingColumns SheetStatus = "missing_columns"
)

// SheetOutcome records what happened to a single worksheet. Failed sheets are
// reported, never raised: one bad tab must not sink the workbook.
type SheetOutcome struct {
	SheetName      string      `json:"sheet_name"`
	Status         SheetStatus `json:"status"`
	HeaderRow      int         `json:"header_row"`      // 0-based; -1 unless Status is ok
	ItemCount      int         `json:"item_count"`      // items emitted from this sheet
	RejectedRows   int         `json:"rejected_rows"`   // rows dropped for incomplete mandatory data
	BlankRows      int         `json:"blank_rows"`      // fully empty rows, ignored silently
	MissingColumns []string    `json:"missing_columns"` // populated when Status is missing_columns
}

// IngestReport is the full result of one ingestion call. Items is the flat
// ordered list (workbook sheet order, then row order); an empty Items is a
// valid result, not an error.
type IngestReport struct {
	UploadID     core.UploadID       `json:"upload_id"`
	StartedAt    core.Timestamp      `json:"started_at"`
	Level        string              `json:"nivel"`
	Items        []ScopeSequenceItem `json:"items"`
	Sheets       []SheetOutcome      `json:"sheets"`
	RejectedRows int                 `json:"rejected_rows"`
	BlankRows    int                 `json:"blank_rows"`
	DurationMs   int64               `json:"duration_ms"`
}

// Warnings returns one operator-facing message per failed sheet.
func (r IngestReport) Warnings() []string {
	var msgs []string
	for _, o := range r.Sheets {
		switch o.Status {
		case SheetNoHeader:
			msgs = append(msgs, "sheet "+o.SheetName+": no header row found")
		case SheetMissingColumns:
			msg := "sheet " + o.SheetName + ": missing mandatory columns"
			for i, col := range o.MissingColumns {
				if i == 0 {
					msg += ": " + col
				} else {
					msg += ", " + col
				}
			}
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
