package handler

import (
	"context"
	"log/slog"
	"net/http"

	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/httputil"
)

// GenerationHandler starts document generation.
// Generation outlives the request: a client that disconnects does not cancel it.
type GenerationHandler struct {
	generationService planningSvc.GenerationService
	logger            *slog.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generationService planningSvc.GenerationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		logger:            logger,
	}
}

// GenerateDocument generates one document according to the project mode
// POST /api/projects/{id}/documents/{type}/generate
func (h *GenerationHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.generationService.GenerateDocument(context.WithoutCancel(r.Context()), projectID, httputil.GetUserID(r), docType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RefineDocument runs the evaluate-and-revise loop on one document
// POST /api/projects/{id}/documents/{type}/refine
func (h *GenerationHandler) RefineDocument(w http.ResponseWriter, r *http.Request) {
	projectID, docType, err := projectDocument(r)
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.generationService.RefineDocument(context.WithoutCancel(r.Context()), projectID, httputil.GetUserID(r), docType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// GenerateProject generates every document in order. A failure part way
// through reports the error along with the documents already finished.
// POST /api/projects/{id}/generate
func (h *GenerationHandler) GenerateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	docs, err := h.generationService.GenerateProject(context.WithoutCancel(r.Context()), projectID, httputil.GetUserID(r))
	if err != nil {
		if len(docs) == 0 {
			handleError(w, err)
			return
		}
		h.logger.Warn("project generation incomplete", "project_id", projectID, "completed", len(docs), "error", err)
		httputil.RespondErrorWithExtras(w, statusFor(err), err.Error(), map[string]interface{}{
			"documents": docs,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}
