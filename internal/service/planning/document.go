package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"planforge/internal/config"
	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/service/planning/converter"
)

// documentService implements the DocumentService interface
type documentService struct {
	store       planningSvc.DocumentStore
	projectRepo planningRepo.ProjectRepository
	docRepo     planningRepo.DocumentRepository
	versionRepo planningRepo.VersionRepository
	converters  *converter.ConverterRegistry
	publisher   planningSvc.DocumentEventPublisher
	logger      *slog.Logger
}

// NewDocumentService creates a new document service. publisher may be nil.
func NewDocumentService(
	store planningSvc.DocumentStore,
	projectRepo planningRepo.ProjectRepository,
	docRepo planningRepo.DocumentRepository,
	versionRepo planningRepo.VersionRepository,
	converters *converter.ConverterRegistry,
	publisher planningSvc.DocumentEventPublisher,
	logger *slog.Logger,
) planningSvc.DocumentService {
	return &documentService{
		store:       store,
		projectRepo: projectRepo,
		docRepo:     docRepo,
		versionRepo: versionRepo,
		converters:  converters,
		publisher:   publisher,
		logger:      logger,
	}
}

// ListDocuments returns the project's documents in canonical order
func (s *documentService) ListDocuments(ctx context.Context, projectID, userID string) ([]models.Document, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, projectID)
}

// GetDocument returns the current document of a type
func (s *documentService) GetDocument(ctx context.Context, projectID, userID string, docType models.DocumentType) (*models.Document, error) {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.docRepo.GetByType(ctx, projectID, docType)
}

// UpdateContent applies a manual edit. The replaced content is versioned with source manual.
func (s *documentService) UpdateContent(ctx context.Context, req *planningSvc.UpdateContentRequest) (*models.Document, error) {
	if err := validateUpdateContent(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorize(ctx, req.ProjectID, req.UserID); err != nil {
		return nil, err
	}

	content, err := s.converters.Convert(ctx, req.Format, req.Content)
	if err != nil {
		return nil, err
	}

	return s.store.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
		ProjectID:        req.ProjectID,
		Type:             models.DocumentType(req.Type),
		Content:          content,
		Source:           models.SourceManual,
		ExpectedRevision: req.ExpectedRevision,
	})
}

// SetStatus changes a document's review status
func (s *documentService) SetStatus(ctx context.Context, projectID, userID string, docType models.DocumentType, req *planningSvc.UpdateStatusRequest) (*models.Document, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Status,
			validation.Required,
			validation.In(string(models.StatusDraft), string(models.StatusCompleted)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.store.SetStatus(ctx, projectID, docType, models.DocumentStatus(req.Status))
}

// DeleteDocument removes the document and its version history
func (s *documentService) DeleteDocument(ctx context.Context, projectID, userID string, docType models.DocumentType) error {
	if err := s.authorize(ctx, projectID, userID); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, projectID, docType); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"project_id", projectID,
		"type", docType,
		"user_id", userID,
	)

	if s.publisher != nil {
		event := &planningSvc.DocumentChangedEvent{
			ProjectID:  projectID,
			Type:       docType,
			Deleted:    true,
			OccurredAt: time.Now(),
		}
		if err := s.publisher.PublishDocumentChanged(ctx, event); err != nil {
			s.logger.Warn("document event not published", "project_id", projectID, "error", err)
		}
	}
	return nil
}

// ListVersions returns the document's history, newest first
func (s *documentService) ListVersions(ctx context.Context, projectID, userID string, docType models.DocumentType) ([]models.Version, error) {
	doc, err := s.GetDocument(ctx, projectID, userID, docType)
	if err != nil {
		return nil, err
	}
	return s.versionRepo.ListByDocument(ctx, doc.ID)
}

// RestoreVersion writes a past version's content back as the current content
func (s *documentService) RestoreVersion(ctx context.Context, projectID, userID string, docType models.DocumentType, versionID string) (*models.Document, error) {
	doc, err := s.GetDocument(ctx, projectID, userID, docType)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByID(ctx, versionID, doc.ID)
	if err != nil {
		return nil, err
	}

	restored, err := s.store.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
		ProjectID: projectID,
		Type:      docType,
		Content:   version.Content,
		Source:    models.SourceManual,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document version restored",
		"project_id", projectID,
		"type", docType,
		"version_id", versionID,
		"from_revision", version.Revision,
		"revision", restored.Revision,
	)
	return restored, nil
}

// authorize confirms the project exists and belongs to userID
func (s *documentService) authorize(ctx context.Context, projectID, userID string) error {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return err
	}
	return nil
}

func validateUpdateContent(req *planningSvc.UpdateContentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.By(documentTypeRule)),
		validation.Field(&req.Content, validation.Length(0, config.MaxDocumentContentLength)),
		validation.Field(&req.Format, validation.In(
			string(planningSvc.FormatMarkdown),
			string(planningSvc.FormatText),
			string(planningSvc.FormatHTML),
			string(planningSvc.FormatTipTap),
		)),
		validation.Field(&req.ExpectedRevision, validation.Min(0)),
	)
}

func documentTypeRule(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	_, err := models.ParseDocumentType(s)
	return err
}
