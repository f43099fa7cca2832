package handler

import (
	"log/slog"
	"net/http"

	"planforge/internal/domain/models/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService planningSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService planningSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// ListDocuments returns the project's documents in pipeline order
// GET /api/projects/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	docs, err := h.docService.ListDocuments(r.Context(), projectID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument returns one document by type
// GET /api/projects/{id}/documents/{type}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), projectID, httputil.GetUserID(r), docType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateContent saves a manual edit. A stale expected_revision returns 409
// with the current document.
// PUT /api/projects/{id}/documents/{type}
func (h *DocumentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}
	userID := httputil.GetUserID(r)

	var req planningSvc.UpdateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ProjectID = projectID
	req.UserID = userID
	req.Type = string(docType)

	doc, err := h.docService.UpdateContent(r.Context(), &req)
	if err != nil {
		HandleConflict(w, err, func() (*planning.Document, error) {
			return h.docService.GetDocument(r.Context(), projectID, userID, docType)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SetStatus changes a document's review status
// PATCH /api/projects/{id}/documents/{type}/status
func (h *DocumentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req planningSvc.UpdateStatusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.SetStatus(r.Context(), projectID, httputil.GetUserID(r), docType, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document and its history
// DELETE /api/projects/{id}/documents/{type}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), projectID, httputil.GetUserID(r), docType); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListVersions returns a document's history, newest first
// GET /api/projects/{id}/documents/{type}/versions
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	versions, err := h.docService.ListVersions(r.Context(), projectID, httputil.GetUserID(r), docType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// RestoreVersion makes a past version current
// POST /api/projects/{id}/documents/{type}/versions/{versionId}/restore
func (h *DocumentHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}
	versionID, err := pathID(r, "versionId")
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.docService.RestoreVersion(r.Context(), projectID, httputil.GetUserID(r), docType, versionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}
