package handler

import (
	"log/slog"
	"net/http"

	"planforge/internal/catalog"
	"planforge/internal/httputil"
)

// ProviderStatus reports whether a provider has credentials
type ProviderStatus interface {
	Configured(provider string) bool
}

// ModelsHandler lists the accepted model identifiers
type ModelsHandler struct {
	catalog         *catalog.Registry
	providers       ProviderStatus
	primaryModel    string
	evaluationModel string
	logger          *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(cat *catalog.Registry, providers ProviderStatus, primaryModel, evaluationModel string, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		catalog:         cat,
		providers:       providers,
		primaryModel:    primaryModel,
		evaluationModel: evaluationModel,
		logger:          logger,
	}
}

// ModelResponse is one catalog model in the API response
type ModelResponse struct {
	ID          string   `json:"id"`
	Provider    string   `json:"provider"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
	Available   bool     `json:"available"`
}

// ListModels returns the model catalog and the active models
// GET /api/models
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.catalog.Models()
	out := make([]ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, ModelResponse{
			ID:          m.ID,
			Provider:    m.Provider,
			DisplayName: m.DisplayName,
			Roles:       m.Roles,
			Available:   h.providers.Configured(m.Provider),
		})
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"models":           out,
		"primary_model":    h.primaryModel,
		"evaluation_model": h.evaluationModel,
	})
}
