package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/patrickmn/go-cache"

	"planforge/internal/catalog"
	"planforge/internal/config"
	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	"planforge/internal/domain/repositories"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
)

// BuiltinTemplates supplies the templates seeded into an empty store
type BuiltinTemplates interface {
	DefaultTemplate(docType models.DocumentType) (catalog.DefaultTemplate, bool)
}

// templateService implements the TemplateService interface
type templateService struct {
	templateRepo planningRepo.TemplateRepository
	txManager    repositories.TransactionManager
	builtins     BuiltinTemplates
	resolved     *cache.Cache // key: set|type
	logger       *slog.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(
	templateRepo planningRepo.TemplateRepository,
	txManager repositories.TransactionManager,
	builtins BuiltinTemplates,
	logger *slog.Logger,
) planningSvc.TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		txManager:    txManager,
		builtins:     builtins,
		resolved:     cache.New(5*time.Minute, 10*time.Minute),
		logger:       logger,
	}
}

// ResolveTemplate returns the set's template for docType, falling back to the default
func (s *templateService) ResolveTemplate(ctx context.Context, templateSet string, docType models.DocumentType) (*models.Template, error) {
	key := templateSet + "|" + string(docType)
	if cached, ok := s.resolved.Get(key); ok {
		tmpl := *cached.(*models.Template)
		return &tmpl, nil
	}

	var tmpl *models.Template
	var err error
	if templateSet != "" {
		tmpl, err = s.templateRepo.GetForSet(ctx, templateSet, docType)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if tmpl == nil {
		tmpl, err = s.templateRepo.GetDefault(ctx, docType)
		if err != nil {
			return nil, err
		}
	}

	s.resolved.SetDefault(key, tmpl)
	out := *tmpl
	return &out, nil
}

// ListTemplates lists templates, optionally filtered by type
func (s *templateService) ListTemplates(ctx context.Context, docType string) ([]models.Template, error) {
	var t models.DocumentType
	if docType != "" {
		parsed, err := models.ParseDocumentType(docType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		t = parsed
	}
	return s.templateRepo.List(ctx, t)
}

// GetTemplate retrieves a template by ID
func (s *templateService) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	return s.templateRepo.GetByID(ctx, id)
}

// CreateTemplate creates a template; a default template displaces the previous default
func (s *templateService) CreateTemplate(ctx context.Context, req *planningSvc.CreateTemplateRequest) (*models.Template, error) {
	if err := validateCreateTemplate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	tmpl := &models.Template{
		Name:        strings.TrimSpace(req.Name),
		Type:        models.DocumentType(req.Type),
		Content:     req.Content,
		TemplateSet: strings.TrimSpace(req.TemplateSet),
		IsDefault:   req.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tmpl.TemplateSet == "" {
		tmpl.TemplateSet = models.DefaultTemplateSet
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if tmpl.IsDefault {
			if err := s.templateRepo.ClearDefault(txCtx, tmpl.Type); err != nil {
				return err
			}
		}
		return s.templateRepo.Create(txCtx, tmpl)
	})
	if err != nil {
		return nil, err
	}
	s.resolved.Flush()

	s.logger.Info("template created",
		"id", tmpl.ID,
		"type", tmpl.Type,
		"template_set", tmpl.TemplateSet,
		"is_default", tmpl.IsDefault,
	)
	return tmpl, nil
}

// UpdateTemplate replaces a template's name and content
func (s *templateService) UpdateTemplate(ctx context.Context, id string, req *planningSvc.UpdateTemplateRequest) (*models.Template, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxTemplateNameLength)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxTemplateContentLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tmpl.Name = strings.TrimSpace(req.Name)
	tmpl.Content = req.Content
	tmpl.UpdatedAt = time.Now()

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	s.resolved.Flush()

	s.logger.Info("template updated", "id", id, "type", tmpl.Type)
	return tmpl, nil
}

// DeleteTemplate removes a template
func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.resolved.Flush()

	s.logger.Info("template deleted", "id", id)
	return nil
}

// SetDefault makes the template its type's only default
func (s *templateService) SetDefault(ctx context.Context, id string) (*models.Template, error) {
	var tmpl *models.Template
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		found, err := s.templateRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.templateRepo.ClearDefault(txCtx, found.Type); err != nil {
			return err
		}
		found.IsDefault = true
		found.UpdatedAt = time.Now()
		if err := s.templateRepo.Update(txCtx, found); err != nil {
			return err
		}
		tmpl = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.resolved.Flush()

	s.logger.Info("default template changed", "id", id, "type", tmpl.Type)
	return tmpl, nil
}

// EnsureDefaults seeds one built-in default per document type into an empty store
func (s *templateService) EnsureDefaults(ctx context.Context) (int, error) {
	inserted := 0
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		count, err := s.templateRepo.Count(txCtx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now()
		for _, docType := range models.DocumentTypes {
			builtin, ok := s.builtins.DefaultTemplate(docType)
			if !ok {
				return fmt.Errorf("no built-in template for %s", docType)
			}
			tmpl := &models.Template{
				Name:        builtin.Name,
				Type:        docType,
				Content:     builtin.Content,
				TemplateSet: models.DefaultTemplateSet,
				IsDefault:   true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.templateRepo.Create(txCtx, tmpl); err != nil {
				return fmt.Errorf("seed %s template: %w", docType, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.resolved.Flush()

	if inserted > 0 {
		s.logger.Info("default templates seeded", "count", inserted)
	}
	return inserted, nil
}

func validateCreateTemplate(req *planningSvc.CreateTemplateRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxTemplateNameLength)),
		validation.Field(&req.Type, validation.Required, validation.By(documentTypeRule)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxTemplateContentLength)),
		validation.Field(&req.TemplateSet, validation.Length(0, config.MaxTemplateSetLength)),
	)
}
