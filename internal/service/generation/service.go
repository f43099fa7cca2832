package generation

import (
	"context"
	"log/slog"

	"planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
)

// generationService implements the GenerationService interface
type generationService struct {
	orchestrator *Orchestrator
	projectRepo  planningRepo.ProjectRepository
	store        planningSvc.DocumentStore
	logger       *slog.Logger
}

// NewGenerationService creates a generation service over orchestrator
func NewGenerationService(
	orchestrator *Orchestrator,
	projectRepo planningRepo.ProjectRepository,
	store planningSvc.DocumentStore,
	logger *slog.Logger,
) planningSvc.GenerationService {
	return &generationService{
		orchestrator: orchestrator,
		projectRepo:  projectRepo,
		store:        store,
		logger:       logger,
	}
}

// GenerateDocument generates once in standard mode and refines in agent mode
func (s *generationService) GenerateDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error) {
	project, prior, err := s.load(ctx, projectID, userID, docType)
	if err != nil {
		return nil, err
	}

	if project.Mode == planning.ModeAgent {
		return s.orchestrator.Refine(ctx, project, docType, prior)
	}
	return s.orchestrator.GenerateOne(ctx, project, docType, prior)
}

// RefineDocument runs the refinement loop regardless of project mode
func (s *generationService) RefineDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error) {
	project, prior, err := s.load(ctx, projectID, userID, docType)
	if err != nil {
		return nil, err
	}
	return s.orchestrator.Refine(ctx, project, docType, prior)
}

// GenerateProject refines all document types in order
func (s *generationService) GenerateProject(ctx context.Context, projectID, userID string) ([]planning.Document, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return s.orchestrator.GenerateAll(ctx, project)
}

// load returns the owner's project and the documents preceding docType
func (s *generationService) load(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Project, []planning.Document, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	docs, err := s.store.ListDocuments(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	return project, planning.Preceding(docs, docType), nil
}
