package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

type projectRepository struct {
	s *Store
}

func (r *projectRepository) Create(ctx context.Context, project *planning.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	project.ID = uuid.NewString()
	if project.Metadata == nil {
		project.Metadata = map[string]interface{}{}
	}
	stored := *project
	r.s.projects[project.ID] = &stored
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id, userID string) (*planning.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return copyProject(p), nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*planning.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return copyProject(p), nil
}

func (r *projectRepository) List(ctx context.Context, userID string) ([]planning.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := []planning.Project{}
	for _, p := range r.s.projects {
		if p.UserID == userID {
			projects = append(projects, *copyProject(p))
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *planning.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[project.ID]
	if !ok || p.UserID != project.UserID {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	p.Name = project.Name
	p.Description = project.Description
	p.Mode = project.Mode
	p.TemplateSet = project.TemplateSet
	p.UpdatedAt = project.UpdatedAt
	return nil
}

func (r *projectRepository) UpdateSummary(ctx context.Context, id, summary string, metadata map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	p.Summary = summary
	p.Metadata = metadata
	return nil
}

// Delete removes the project and cascades to its documents and their versions
func (r *projectRepository) Delete(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.projects, id)
	for docID, doc := range r.s.documents {
		if doc.ProjectID == id {
			delete(r.s.documents, docID)
			delete(r.s.versions, docID)
		}
	}
	return nil
}

func copyProject(p *planning.Project) *planning.Project {
	out := *p
	out.Metadata = make(map[string]interface{}, len(p.Metadata))
	for k, v := range p.Metadata {
		out.Metadata[k] = v
	}
	return &out
}
