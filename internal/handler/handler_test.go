package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/catalog"
	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/middleware"
	"planforge/internal/repository/memory"
	planningService "planforge/internal/service/planning"
	"planforge/internal/service/planning/converter"
)

const testUser = "user-1"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGeneration writes fixed content through the document store
type fakeGeneration struct {
	docs    planningSvc.DocumentStore
	failAll error
	partial []planning.Document
}

func (f *fakeGeneration) GenerateDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error) {
	return f.docs.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
		ProjectID: projectID, Type: docType, Content: "# Generated", Source: planning.SourceAIGenerator,
	})
}

func (f *fakeGeneration) RefineDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error) {
	if _, err := f.GenerateDocument(ctx, projectID, userID, docType); err != nil {
		return nil, err
	}
	return f.docs.SetStatus(ctx, projectID, docType, planning.StatusCompleted)
}

func (f *fakeGeneration) GenerateProject(ctx context.Context, projectID, userID string) ([]planning.Document, error) {
	return f.partial, f.failAll
}

type allConfigured struct{}

func (allConfigured) Configured(string) bool { return true }

type testServer struct {
	handler    http.Handler
	generation *fakeGeneration
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	logger := discardLogger()

	cat, err := catalog.NewRegistry()
	require.NoError(t, err)

	docs := planningService.NewDocumentStore(store.Documents(), store.Versions(), store.TransactionManager(), nil, logger)
	generation := &fakeGeneration{docs: docs}

	mux := NewRouter(Handlers{
		Projects: NewProjectHandler(
			planningService.NewProjectService(store.Projects(), logger),
			planningService.NewExportService(store.Projects(), store.Documents(), logger),
			logger,
		),
		Documents: NewDocumentHandler(planningService.NewDocumentService(
			docs, store.Projects(), store.Documents(), store.Versions(), converter.NewConverterRegistry(), nil, logger,
		), logger),
		Templates:  NewTemplateHandler(planningService.NewTemplateService(store.Templates(), store.TransactionManager(), cat, logger), logger),
		Generation: NewGenerationHandler(generation, logger),
		Models:     NewModelsHandler(cat, allConfigured{}, "claude-sonnet-4-5", "claude-haiku-4-5", logger),
		Health:     HealthCheck(nil),
	})

	return &testServer{
		handler:    middleware.Chain(mux, middleware.Recovery(logger), middleware.DevAuth(testUser)),
		generation: generation,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) createProject(t *testing.T) planning.Project {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/projects", map[string]string{
		"name":        "Trail journal",
		"description": "A hiking log with maps.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[planning.Project](t, rec)
}

func TestProjectRoutes(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	assert.Equal(t, testUser, project.UserID)
	assert.Equal(t, planning.ModeStandard, project.Mode)

	rec := s.do(t, http.MethodPatch, "/api/projects/"+project.ID, map[string]interface{}{
		"mode":         "agent",
		"template_set": "detailed",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "detailed", decode[planning.Project](t, rec).TemplateSet)

	rec = s.do(t, http.MethodPatch, "/api/projects/"+project.ID, map[string]interface{}{"template_set": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[planning.Project](t, rec)
	assert.Empty(t, updated.TemplateSet, "null clears the template set")
	assert.Equal(t, planning.ModeAgent, updated.Mode, "absent fields are unchanged")

	rec = s.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]planning.Project](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"invalid project id", http.MethodGet, "/api/projects/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown project", http.MethodGet, "/api/projects/7f0b8a4e-0000-4000-8000-000000000000", nil, http.StatusNotFound},
		{"unknown document type", http.MethodGet, "/api/projects/" + project.ID + "/documents/roadmap", nil, http.StatusBadRequest},
		{"missing document", http.MethodGet, "/api/projects/" + project.ID + "/documents/prd", nil, http.StatusNotFound},
		{"blank project name", http.MethodPost, "/api/projects", map[string]string{"name": " "}, http.StatusBadRequest},
		{"bad status", http.MethodPatch, "/api/projects/" + project.ID + "/documents/prd/status", map[string]string{"status": "archived"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestDocumentRoutes_EditVersionRestore(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)
	base := "/api/projects/" + project.ID + "/documents/prd"

	rec := s.do(t, http.MethodPost, base+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	generated := decode[planning.Document](t, rec)
	assert.Equal(t, 1, generated.Revision)

	rec = s.do(t, http.MethodPut, base, map[string]interface{}{"content": "# Edited", "expected_revision": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "# Edited", decode[planning.Document](t, rec).Content)

	// Stale revision returns the current document
	rec = s.do(t, http.MethodPut, base, map[string]interface{}{"content": "# Lost", "expected_revision": 1})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "# Edited", decode[planning.Document](t, rec).Content)

	rec = s.do(t, http.MethodGet, base+"/versions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	versions := decode[[]planning.Version](t, rec)
	require.Len(t, versions, 1)
	assert.Equal(t, "# Generated", versions[0].Content)

	rec = s.do(t, http.MethodPost, base+"/versions/"+versions[0].ID+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "# Generated", decode[planning.Document](t, rec).Content)

	rec = s.do(t, http.MethodPost, base+"/refine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, planning.StatusCompleted, decode[planning.Document](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID+"/export?format=markdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".md")
	assert.Contains(t, rec.Body.String(), "# Trail journal")

	rec = s.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGenerateProject_PartialFailure(t *testing.T) {
	s := newTestServer(t)
	project := s.createProject(t)

	s.generation.partial = []planning.Document{{Type: planning.TypeProjectRequest, Content: "done"}}
	s.generation.failAll = &domain.GenerationError{Model: "m", DocumentType: "technical-spec", Message: "provider call failed"}

	rec := s.do(t, http.MethodPost, "/api/projects/"+project.ID+"/generate", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.Len(t, body["documents"], 1)
	assert.Contains(t, body["detail"], "technical-spec")
}

func TestTemplateRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/templates", map[string]interface{}{
		"name":    "Terse PRD",
		"type":    "prd",
		"content": "Write a PRD for {{IDEA}}",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tmpl := decode[planning.Template](t, rec)

	rec = s.do(t, http.MethodPost, "/api/templates/"+tmpl.ID+"/default", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[planning.Template](t, rec).IsDefault)

	rec = s.do(t, http.MethodGet, "/api/templates?type=prd", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]planning.Template](t, rec), 1)
}

func TestModelsAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "claude-sonnet-4-5", body["primary_model"])
	assert.NotEmpty(t, body["models"])

	rec = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
