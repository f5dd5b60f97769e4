package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"escopo/app"
	"escopo/domain/scope"
	"escopo/internal/config"
	"escopo/internal/ingest"
)

// fakeScopeRepository is an in-memory ScopeRepository for handler tests.
type fakeScopeRepository struct {
	stored map[string][]scope.ScopeSequenceItem
}

func newFakeRepo() *fakeScopeRepository {
	return &fakeScopeRepository{stored: make(map[string][]scope.ScopeSequenceItem)}
}

func (f *fakeScopeRepository) ReplaceForLevel(_ context.Context, level string, items []scope.ScopeSequenceItem) error {
	f.stored[level] = items
	return nil
}

func (f *fakeScopeRepository) ListByLevel(_ context.Context, level, subject string) ([]scope.ScopeSequenceItem, error) {
	var out []scope.ScopeSequenceItem
	for _, item := range f.stored[level] {
		if subject == "" || item.Subject == subject {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeScopeRepository) CountByLevel(_ context.Context, level string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, item := range f.stored[level] {
		counts[item.Subject]++
	}
	return counts, nil
}

func (f *fakeScopeRepository) Levels(_ context.Context) ([]string, error) {
	var levels []string
	for level := range f.stored {
		levels = append(levels, level)
	}
	return levels, nil
}

func newTestServer(t *testing.T) (*Server, *fakeScopeRepository) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Ingest: config.IngestConfig{
			HeaderSearchWindow: 10,
			MinHeaderMatches:   3,
			MaxUploadBytes:     20 * 1024 * 1024,
		},
	}
	repo := newFakeRepo()
	pipeline := ingest.NewPipeline(ingest.DefaultSynonyms(), ingest.DefaultLocatorConfig())
	return NewServer(cfg, app.NewIngestService(pipeline, repo), repo), repo
}

func scopeWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Matemática"))
	rows := [][]interface{}{
		{"Ano/Série", "Bimestre", "Habilidade", "Objetos do Conhecimento", "Conteudo"},
		{"6º ano", "1º Bimestre", "EF06MA01", "Números", "Sistema de numeração decimal"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Matemática", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename, level string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("planilha", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)

	if level != "" {
		require.NoError(t, writer.WriteField("nivel", level))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleUpload_IngestsAndStores(t *testing.T) {
	server, repo := newTestServer(t)

	body, contentType := multipartUpload(t, "escopo.xlsx", "fundamental-2", scopeWorkbook(t))
	req := httptest.NewRequest(http.MethodPost, "/api/escopo/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Nivel         string `json:"nivel"`
		ItemsIngested int    `json:"items_ingested"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fundamental-2", resp.Nivel)
	assert.Equal(t, 1, resp.ItemsIngested)

	stored := repo.stored["fundamental-2"]
	require.Len(t, stored, 1)
	assert.Equal(t, "Matemática", stored[0].Subject)
}

func TestHandleUpload_MissingLevel(t *testing.T) {
	server, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "escopo.xlsx", "", scopeWorkbook(t))
	req := httptest.NewRequest(http.MethodPost, "/api/escopo/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload_RejectsWrongExtension(t *testing.T) {
	server, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "escopo.csv", "fundamental-2", []byte("a,b,c"))
	req := httptest.NewRequest(http.MethodPost, "/api/escopo/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload_MalformedWorkbook(t *testing.T) {
	server, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "escopo.xlsx", "fundamental-2", []byte("not a spreadsheet"))
	req := httptest.NewRequest(http.MethodPost, "/api/escopo/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a valid spreadsheet")
}

func TestHandleListItems_FiltersBySubject(t *testing.T) {
	server, repo := newTestServer(t)
	repo.stored["fundamental-2"] = []scope.ScopeSequenceItem{
		{Subject: "Matemática", YearOrGrade: "6", Term: "1", SkillCode: "EF06MA01", KnowledgeObject: "Números", Content: "Decimais"},
		{Subject: "Ciências", YearOrGrade: "6", Term: "1", SkillCode: "EF06CI01", KnowledgeObject: "Matéria", Content: "Propriedades"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/escopo/fundamental-2?disciplina=Ciências", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total int                       `json:"total"`
		Items []scope.ScopeSequenceItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Ciências", resp.Items[0].Subject)
}

func TestHandleLevelSummary(t *testing.T) {
	server, repo := newTestServer(t)
	repo.stored["medio"] = []scope.ScopeSequenceItem{
		{Subject: "Física", YearOrGrade: "1", Term: "1", SkillCode: "EM13CNT101", KnowledgeObject: "Energia", Content: "Trabalho"},
		{Subject: "Física", YearOrGrade: "1", Term: "2", SkillCode: "EM13CNT102", KnowledgeObject: "Energia", Content: "Potência"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/escopo/medio/resumo", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total       int            `json:"total"`
		Disciplinas map[string]int `json:"disciplinas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Disciplinas["Física"])
}
