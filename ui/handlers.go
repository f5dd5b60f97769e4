package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "escopo/internal/errors"
)

// handleUpload ingests an uploaded scope-and-sequence workbook under the
// education level given in the "nivel" form field.
func (s *Server) handleUpload(c *gin.Context) {
	log.Printf("[handleUpload] Starting workbook upload process")

	file, header, err := c.Request.FormFile("planilha")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		log.Printf("[handleUpload] FAILED - File too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.maxUploadBytes/(1024*1024)),
		})
		return
	}

	filename := header.Filename
	if !hasValidExtension(filename) {
		log.Printf("[handleUpload] FAILED - Invalid file extension: %s", filename)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel workbooks (.xlsx, .xlsm) are allowed"})
		return
	}

	// Some clients misreport spreadsheet MIME types; log and carry on rather
	// than reject, the workbook open is the real gate.
	contentType := header.Header.Get("Content-Type")
	if !isExpectedMimeType(contentType) {
		log.Printf("[handleUpload] WARNING - Unexpected MIME type: %s for file: %s", contentType, filename)
	}

	level := strings.TrimSpace(c.PostForm("nivel"))
	if level == "" {
		log.Printf("[handleUpload] FAILED - Missing education level")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field 'nivel' (education level) is required"})
		return
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Could not read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	report, err := s.ingestService.IngestWorkbook(c.Request.Context(), buf, level)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeMalformedWorkbook {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a valid spreadsheet workbook"})
			return
		}
		log.Printf("[handleUpload] FAILED - Ingestion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to ingest workbook: %v", err)})
		return
	}

	// Zero items is a valid outcome; the client decides how loudly to warn.
	c.JSON(http.StatusOK, gin.H{
		"upload_id":      report.UploadID,
		"nivel":          report.Level,
		"items_ingested": len(report.Items),
		"rows_rejected":  report.RejectedRows,
		"sheets":         report.Sheets,
		"warnings":       report.Warnings(),
	})
}

// handleListItems returns stored items for a level, optionally filtered by
// the "disciplina" query parameter.
func (s *Server) handleListItems(c *gin.Context) {
	level := c.Param("nivel")
	subject := c.Query("disciplina")

	items, err := s.repo.ListByLevel(c.Request.Context(), level, subject)
	if err != nil {
		log.Printf("[handleListItems] FAILED - %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nivel": level,
		"total": len(items),
		"items": items,
	})
}

// handleLevelSummary returns per-subject item counts for a level.
func (s *Server) handleLevelSummary(c *gin.Context) {
	level := c.Param("nivel")

	counts, err := s.repo.CountByLevel(c.Request.Context(), level)
	if err != nil {
		log.Printf("[handleLevelSummary] FAILED - %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize level"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"nivel":       level,
		"total":       total,
		"disciplinas": counts,
	})
}

// handleListLevels returns every education level with stored items.
func (s *Server) handleListLevels(c *gin.Context) {
	levels, err := s.repo.Levels(c.Request.Context())
	if err != nil {
		log.Printf("[handleListLevels] FAILED - %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list levels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"niveis": levels})
}

func hasValidExtension(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}

func isExpectedMimeType(contentType string) bool {
	expected := []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // .xlsx
		"application/vnd.ms-excel.sheet.macroenabled.12",                    // .xlsm
		"application/octet-stream",
	}
	for _, mimeType := range expected {
		if contentType == mimeType {
			return true
		}
	}
	return strings.Contains(contentType, "excel") || strings.Contains(contentType, "spreadsheet")
}
