package excel

import (
	"bytes"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"escopo/internal/errors"
	"escopo/internal/ingest"
)

// OpenWorkbook parses an in-memory spreadsheet buffer and returns its
// worksheets in workbook order, each as a raw cell grid. Cell values come
// back as excelize renders them (formatted strings), with original column
// order preserved.
//
// An unparseable container is the one fatal condition in the whole ingestion
// path; it surfaces as a MALFORMED_WORKBOOK error.
func OpenWorkbook(buf []byte) ([]ingest.Sheet, error) {
	start := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		log.Printf("[OpenWorkbook] FAILED - buffer is not a valid workbook: %v", err)
		return nil, errors.MalformedWorkbook(err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	sheets := make([]ingest.Sheet, 0, len(sheetNames))
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			// Sheet list came from the file itself, so a read failure here
			// means the container is lying about its contents.
			log.Printf("[OpenWorkbook] FAILED - could not read sheet %q: %v", name, err)
			return nil, errors.MalformedWorkbook(err)
		}
		sheets = append(sheets, ingest.Sheet{Name: name, Rows: rows})
	}

	log.Printf("[OpenWorkbook] Workbook opened: %d sheets in %.2fms",
		len(sheets), float64(time.Since(start).Nanoseconds())/1e6)
	return sheets, nil
}
