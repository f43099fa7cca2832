package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"planforge/internal/config"
	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	"planforge/internal/domain/repositories"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/utils"
)

// documentStore implements the DocumentStore interface
type documentStore struct {
	docRepo     planningRepo.DocumentRepository
	versionRepo planningRepo.VersionRepository
	txManager   repositories.TransactionManager
	publisher   planningSvc.DocumentEventPublisher
	logger      *slog.Logger
}

// NewDocumentStore creates the store the generation pipeline writes through.
// publisher may be nil.
func NewDocumentStore(
	docRepo planningRepo.DocumentRepository,
	versionRepo planningRepo.VersionRepository,
	txManager repositories.TransactionManager,
	publisher planningSvc.DocumentEventPublisher,
	logger *slog.Logger,
) planningSvc.DocumentStore {
	return &documentStore{
		docRepo:     docRepo,
		versionRepo: versionRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// UpsertContent writes content for a (project, type) pair.
// An existing document is snapshotted into a Version before it is
// overwritten, inside the same transaction.
func (s *documentStore) UpsertContent(ctx context.Context, req *planningSvc.UpsertContentRequest) (*models.Document, error) {
	if err := validateUpsert(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var doc *models.Document
	var versioned bool

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.docRepo.GetByType(txCtx, req.ProjectID, req.Type)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		current := 0
		if existing != nil {
			current = existing.Revision
		}
		if req.ExpectedRevision != nil && *req.ExpectedRevision != current {
			return &domain.ConflictError{
				Message: fmt.Sprintf("document %s is at revision %d, expected %d",
					req.Type, current, *req.ExpectedRevision),
				ResourceType: "document",
				ResourceID:   documentID(existing),
			}
		}

		now := time.Now()
		wordCount := utils.CountWords(req.Content)

		if existing == nil {
			doc = &models.Document{
				ProjectID: req.ProjectID,
				Type:      req.Type,
				Content:   req.Content,
				Status:    models.StatusDraft,
				Revision:  1,
				WordCount: wordCount,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return s.docRepo.Create(txCtx, doc)
		}

		// snapshot first: a version always holds content that was once current
		version := &models.Version{
			DocumentID: existing.ID,
			Content:    existing.Content,
			Source:     req.Source,
			Revision:   existing.Revision,
			CreatedAt:  now,
		}
		if err := s.versionRepo.Create(txCtx, version); err != nil {
			return fmt.Errorf("snapshot document: %w", err)
		}

		existing.Content = req.Content
		existing.Status = models.StatusDraft
		existing.Revision++
		existing.WordCount = wordCount
		existing.UpdatedAt = now
		if err := s.docRepo.Update(txCtx, existing); err != nil {
			return err
		}

		doc = existing
		versioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document content written",
		"project_id", doc.ProjectID,
		"type", doc.Type,
		"source", req.Source,
		"revision", doc.Revision,
		"versioned", versioned,
	)

	s.publish(ctx, doc, req.Source, false)
	return doc, nil
}

// ListDocuments returns current documents in canonical type order
func (s *documentStore) ListDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	models.SortDocuments(docs)
	return docs, nil
}

// SetStatus updates a document's status without versioning its content
func (s *documentStore) SetStatus(ctx context.Context, projectID string, docType models.DocumentType, status models.DocumentStatus) (*models.Document, error) {
	if status != models.StatusDraft && status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.docRepo.GetByType(txCtx, projectID, docType)
		if err != nil {
			return err
		}
		existing.Status = status
		existing.UpdatedAt = time.Now()
		if err := s.docRepo.Update(txCtx, existing); err != nil {
			return err
		}
		doc = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, doc, "", false)
	return doc, nil
}

func (s *documentStore) publish(ctx context.Context, doc *models.Document, source models.VersionSource, deleted bool) {
	if s.publisher == nil {
		return
	}
	event := &planningSvc.DocumentChangedEvent{
		ProjectID:  doc.ProjectID,
		DocumentID: doc.ID,
		Type:       doc.Type,
		Source:     source,
		Revision:   doc.Revision,
		Deleted:    deleted,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishDocumentChanged(ctx, event); err != nil {
		s.logger.Warn("document event not published",
			"project_id", doc.ProjectID,
			"type", doc.Type,
			"error", err,
		)
	}
}

func validateUpsert(req *planningSvc.UpsertContentRequest) error {
	if req.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if !req.Type.Valid() {
		return fmt.Errorf("unknown document type %q", req.Type)
	}
	if !req.Source.Valid() {
		return fmt.Errorf("unknown version source %q", req.Source)
	}
	if utf8.RuneCountInString(req.Content) > config.MaxDocumentContentLength {
		return fmt.Errorf("content exceeds %d characters", config.MaxDocumentContentLength)
	}
	return nil
}

func documentID(doc *models.Document) string {
	if doc == nil {
		return ""
	}
	return doc.ID
}
