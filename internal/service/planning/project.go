package planning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"planforge/internal/config"
	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo planningRepo.ProjectRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo planningRepo.ProjectRepository,
	logger *slog.Logger,
) planningSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project from an idea
func (s *projectService) CreateProject(ctx context.Context, req *planningSvc.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	mode := models.ModeStandard
	if req.Mode != "" {
		mode = models.GenerationMode(req.Mode)
	}

	now := time.Now()
	project := &models.Project{
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Mode:        mode,
		TemplateSet: strings.TrimSpace(req.TemplateSet),
		Metadata:    map[string]interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"mode", project.Mode,
		"user_id", req.UserID,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, userID)
}

// ListProjects retrieves all projects for a user
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.List(ctx, userID)
}

// UpdateProject applies the non-nil fields of req
func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *planningSvc.UpdateProjectRequest) (*models.Project, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Mode != nil {
		project.Mode = models.GenerationMode(*req.Mode)
	}
	if req.TemplateSet != nil {
		project.TemplateSet = strings.TrimSpace(*req.TemplateSet)
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"user_id", userID,
	)

	return project, nil
}

// DeleteProject deletes a project with its documents and versions
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", userID,
	)

	return nil
}

func (s *projectService) validateCreateRequest(req *planningSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Description,
			validation.Required,
			validation.Length(1, config.MaxIdeaLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Mode, validation.In(modeValues()...)),
		validation.Field(&req.TemplateSet, validation.Length(0, config.MaxTemplateSetLength)),
	)
}

func (s *projectService) validateUpdateRequest(req *planningSvc.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Description,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxIdeaLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Mode, validation.NilOrNotEmpty, validation.In(modeValues()...)),
		validation.Field(&req.TemplateSet, validation.Length(0, config.MaxTemplateSetLength)),
	)
}

func modeValues() []interface{} {
	return []interface{}{string(models.ModeStandard), string(models.ModeAgent)}
}

// notBlank rejects values that are empty after trimming
func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}
