package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/taxonomy"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// fakeLLM backs the extraction client in handler tests.
type fakeLLM struct {
	response string
	err      error
	probeErr error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Probe(ctx context.Context) error { return f.probeErr }

func (f *fakeLLM) Close() error { return nil }

func newTestServer(t *testing.T, extractor *extraction.Client) *Server {
	t.Helper()
	catalog := taxonomy.Default()
	var detector analysis.RoleDetector
	if extractor != nil {
		detector = extractor
	}
	srv, err := New(Config{
		Port:      0,
		Analyzer:  analysis.New(catalog, detector),
		Catalog:   catalog,
		Extractor: extractor,
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func testResume() string {
	return "Experience\nSoftware engineer since 2019. Developed Go services.\n" +
		"Education\nBS, State University.\nSkills\nGo, Python, SQL.\njane@example.com\n" +
		strings.Repeat("Delivered results. ", 100)
}

func TestNew_RequiresAnalyzerAndCatalog(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHandleAnalyze_Generic(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/analyze", types.AnalyzeRequest{ResumeText: testResume()})

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Score.Grade)
	assert.NotEmpty(t, result.FoundKeywords)
}

func TestHandleAnalyze_MissingResumeText(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/analyze", map[string]string{"job_description": "a job"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_UnknownRole(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/analyze", types.AnalyzeRequest{
		ResumeText: testResume(),
		Role:       "astronaut",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze_WithRole(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/analyze", types.AnalyzeRequest{
		ResumeText: testResume(),
		Role:       "software-engineer",
	})

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleAnalyze_WithJobDescription(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/analyze", types.AnalyzeRequest{
		ResumeText:     testResume(),
		JobDescription: "Looking for Terraform and Kubernetes experience.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Suggestions)
	assert.Equal(t, "job-match", result.Suggestions[0].Type)
}

func TestHandleDetectRole_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodPost, "/detect-role", types.DetectRoleRequest{ResumeText: testResume()})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleDetectRole_Success(t *testing.T) {
	extractor := extraction.New(&fakeLLM{
		response: `{"primaryRole": "Software Engineer", "confidence": 0.9}`,
	}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodPost, "/detect-role", types.DetectRoleRequest{ResumeText: testResume()})

	require.Equal(t, http.StatusOK, rec.Code)
	var role types.JobRoleAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &role))
	assert.Equal(t, "Software Engineer", role.PrimaryRole)
	assert.Contains(t, role.RecommendedCategories, "software-development")
}

func TestHandleDetectRole_UpstreamFailure(t *testing.T) {
	extractor := extraction.New(&fakeLLM{err: errors.New("timeout")}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodPost, "/detect-role", types.DetectRoleRequest{ResumeText: testResume()})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleExtractKeywords_Success(t *testing.T) {
	extractor := extraction.New(&fakeLLM{
		response: `{"suggestedKeywords": ["go", "sql"], "relevanceScore": 0.8}`,
	}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodPost, "/extract-keywords", types.ExtractKeywordsRequest{
		JobDescription: "Backend role with Go and SQL.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, []string{"go", "sql"}, result.SuggestedKeywords)
}

func TestHandleExtractKeywords_CallFailure(t *testing.T) {
	extractor := extraction.New(&fakeLLM{err: errors.New("quota exceeded")}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodPost, "/extract-keywords", types.ExtractKeywordsRequest{
		JobDescription: "any job",
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestHandleExtractKeywords_MissingJobDescription(t *testing.T) {
	extractor := extraction.New(&fakeLLM{}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodPost, "/extract-keywords", map[string]string{"resume_text": "r"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListCategories(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []taxonomy.JobCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.NotEmpty(t, categories)
	assert.Equal(t, "software-development", categories[0].ID)
}

func TestHandleSearchCategories(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/categories/search?q=nursing", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []taxonomy.JobCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "healthcare", categories[0].ID)
}

func TestHandleSearchCategories_MissingQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/categories/search", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRoles(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/roles", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RolesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Roles)

	ids := make([]string, 0, len(resp.Roles))
	for _, role := range resp.Roles {
		ids = append(ids, role.ID)
	}
	assert.Contains(t, ids, "software-engineer")
	assert.Contains(t, ids, "qa-engineer")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.LLMAvailable)
}

func TestHandleHealth_WithExtractor(t *testing.T) {
	extractor := extraction.New(&fakeLLM{}, extraction.Options{})
	srv := newTestServer(t, extractor)

	rec := doRequest(srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.LLMAvailable)
}

func TestCORS_PreflightRequest(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractClientID(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:4411"
	assert.Equal(t, "203.0.113.7", srv.extractClientID(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", srv.extractClientID(req))
}
