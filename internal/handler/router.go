package handler

import "net/http"

// Handlers groups the API handlers mounted by NewRouter
type Handlers struct {
	Projects   *ProjectHandler
	Documents  *DocumentHandler
	Templates  *TemplateHandler
	Generation *GenerationHandler
	Models     *ModelsHandler
	Health     http.Handler
	Metrics    http.Handler
}

// NewRouter registers every API route
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.Handle("GET /health", h.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Models
	mux.HandleFunc("GET /api/models", h.Models.ListModels)

	// Projects
	mux.HandleFunc("GET /api/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST /api/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", h.Projects.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", h.Projects.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Projects.DeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/export", h.Projects.ExportProject)
	mux.HandleFunc("POST /api/projects/{id}/generate", h.Generation.GenerateProject)

	// Documents
	mux.HandleFunc("GET /api/projects/{id}/documents", h.Documents.ListDocuments)
	mux.HandleFunc("GET /api/projects/{id}/documents/{type}", h.Documents.GetDocument)
	mux.HandleFunc("PUT /api/projects/{id}/documents/{type}", h.Documents.UpdateContent)
	mux.HandleFunc("DELETE /api/projects/{id}/documents/{type}", h.Documents.DeleteDocument)
	mux.HandleFunc("PATCH /api/projects/{id}/documents/{type}/status", h.Documents.SetStatus)
	mux.HandleFunc("POST /api/projects/{id}/documents/{type}/generate", h.Generation.GenerateDocument)
	mux.HandleFunc("POST /api/projects/{id}/documents/{type}/refine", h.Generation.RefineDocument)
	mux.HandleFunc("GET /api/projects/{id}/documents/{type}/versions", h.Documents.ListVersions)
	mux.HandleFunc("POST /api/projects/{id}/documents/{type}/versions/{versionId}/restore", h.Documents.RestoreVersion)

	// Templates
	mux.HandleFunc("GET /api/templates", h.Templates.ListTemplates)
	mux.HandleFunc("POST /api/templates", h.Templates.CreateTemplate)
	mux.HandleFunc("GET /api/templates/{id}", h.Templates.GetTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", h.Templates.UpdateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", h.Templates.DeleteTemplate)
	mux.HandleFunc("POST /api/templates/{id}/default", h.Templates.SetDefault)

	return mux
}
