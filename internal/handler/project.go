package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService planningSvc.ProjectService
	exportService  planningSvc.ExportService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService planningSvc.ProjectService, exportService planningSvc.ExportService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		exportService:  exportService,
		logger:         logger,
	}
}

// updateProjectBody is the PATCH body. template_set may be null to clear it.
type updateProjectBody struct {
	Name        *string                   `json:"name"`
	Description *string                   `json:"description"`
	Mode        *string                   `json:"mode"`
	TemplateSet httputil.Optional[string] `json:"template_set"`
}

func (b *updateProjectBody) toRequest() *planningSvc.UpdateProjectRequest {
	req := &planningSvc.UpdateProjectRequest{
		Name:        b.Name,
		Description: b.Description,
		Mode:        b.Mode,
	}
	switch {
	case b.TemplateSet.Set():
		req.TemplateSet = b.TemplateSet.Value
	case b.TemplateSet.Cleared():
		empty := ""
		req.TemplateSet = &empty
	}
	return req
}

// ListProjects retrieves all projects for the user
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req planningSvc.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = httputil.GetUserID(r)

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var body updateProjectBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), id, httputil.GetUserID(r), body.toRequest())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project with its documents
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportProject downloads every document as one file
// GET /api/projects/{id}/export?format=markdown|html|zip
func (h *ProjectHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	format := planningSvc.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = planningSvc.ExportMarkdown
	}

	export, err := h.exportService.ExportProject(r.Context(), id, httputil.GetUserID(r), format)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Body)
}
