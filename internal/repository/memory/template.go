package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

type templateRepository struct {
	s *Store
}

func (r *templateRepository) Create(ctx context.Context, tmpl *planning.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tmpl.ID = uuid.NewString()
	stored := *tmpl
	r.s.templates[tmpl.ID] = &stored
	return nil
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*planning.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tmpl, ok := r.s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	out := *tmpl
	return &out, nil
}

func (r *templateRepository) List(ctx context.Context, docType planning.DocumentType) ([]planning.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	templates := []planning.Template{}
	for _, tmpl := range r.s.templates {
		if docType == "" || tmpl.Type == docType {
			templates = append(templates, *tmpl)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		pi, pj := templates[i].Type.Position(), templates[j].Type.Position()
		if pi != pj {
			return pi < pj
		}
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

func (r *templateRepository) Update(ctx context.Context, tmpl *planning.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.templates[tmpl.ID]
	if !ok {
		return fmt.Errorf("template %s: %w", tmpl.ID, domain.ErrNotFound)
	}
	stored.Name = tmpl.Name
	stored.Content = tmpl.Content
	stored.IsDefault = tmpl.IsDefault
	stored.UpdatedAt = tmpl.UpdatedAt
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.templates, id)
	return nil
}

func (r *templateRepository) GetDefault(ctx context.Context, docType planning.DocumentType) (*planning.Template, error) {
	return r.latest(func(t *planning.Template) bool {
		return t.Type == docType && t.IsDefault
	}, fmt.Sprintf("default template for %s", docType))
}

func (r *templateRepository) GetForSet(ctx context.Context, templateSet string, docType planning.DocumentType) (*planning.Template, error) {
	return r.latest(func(t *planning.Template) bool {
		return t.Type == docType && t.TemplateSet == templateSet
	}, fmt.Sprintf("template %s/%s", templateSet, docType))
}

func (r *templateRepository) ClearDefault(ctx context.Context, docType planning.DocumentType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, tmpl := range r.s.templates {
		if tmpl.Type == docType {
			tmpl.IsDefault = false
		}
	}
	return nil
}

func (r *templateRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.templates), nil
}

func (r *templateRepository) latest(match func(*planning.Template) bool, what string) (*planning.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *planning.Template
	for _, tmpl := range r.s.templates {
		if match(tmpl) && (found == nil || tmpl.UpdatedAt.After(found.UpdatedAt)) {
			found = tmpl
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	out := *found
	return &out, nil
}
