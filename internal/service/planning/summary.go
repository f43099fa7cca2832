package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planforge/internal/config"
	models "planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/utils"
)

// summaryService implements the SummaryService interface
type summaryService struct {
	projectRepo planningRepo.ProjectRepository
	docRepo     planningRepo.DocumentRepository
	logger      *slog.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	projectRepo planningRepo.ProjectRepository,
	docRepo planningRepo.DocumentRepository,
	logger *slog.Logger,
) planningSvc.SummaryService {
	return &summaryService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		logger:      logger,
	}
}

// RefreshSummary recomputes the project's summary text and document metadata
func (s *summaryService) RefreshSummary(ctx context.Context, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary, metadata := BuildSummary(project, docs, time.Now())
	if err := s.projectRepo.UpdateSummary(ctx, projectID, summary, metadata); err != nil {
		return nil, err
	}

	project.Summary = summary
	project.Metadata = metadata
	return project, nil
}

// BuildSummary derives a project's summary and metadata from its documents.
// The summary is the first paragraph of the project request, or the idea
// when no request exists yet.
func BuildSummary(project *models.Project, docs []models.Document, now time.Time) (string, map[string]interface{}) {
	perType := make(map[string]interface{}, len(docs))
	completed := 0
	summary := ""

	for _, doc := range docs {
		perType[string(doc.Type)] = map[string]interface{}{
			"status":     string(doc.Status),
			"word_count": doc.WordCount,
			"revision":   doc.Revision,
			"updated_at": doc.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if doc.Status == models.StatusCompleted {
			completed++
		}
		if doc.Type == models.TypeProjectRequest {
			summary = utils.FirstParagraph(doc.Content)
		}
	}

	if summary == "" {
		summary = utils.FirstParagraph(project.Description)
	}
	if summary == "" {
		summary = project.Description
	}

	metadata := map[string]interface{}{
		"documents":       perType,
		"document_count":  len(docs),
		"completed_count": completed,
		"progress":        fmt.Sprintf("%d/%d", completed, len(models.DocumentTypes)),
		"refreshed_at":    now.UTC().Format(time.RFC3339),
	}

	return utils.Truncate(summary, config.MaxSummaryLength), metadata
}
