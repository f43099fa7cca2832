package catalog

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"planforge/internal/domain/models/planning"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry serves the embedded defaults: models, templates, rubrics and prompts
type Registry struct {
	models    []Model
	templates map[planning.DocumentType]DefaultTemplate
	rubrics   map[planning.DocumentType]string
	generic   string
	prompts   Prompts
	mu        sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		templates: make(map[planning.DocumentType]DefaultTemplate),
		rubrics:   make(map[planning.DocumentType]string),
	}

	if err := r.loadModels(); err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}
	if err := r.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	if err := r.loadRubrics(); err != nil {
		return nil, fmt.Errorf("failed to load rubrics: %w", err)
	}
	if err := r.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	return r, nil
}

func readConfig(name string, dest interface{}) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return nil
}

func (r *Registry) loadModels() error {
	var list modelList
	if err := readConfig("models", &list); err != nil {
		return err
	}

	r.mu.Lock()
	r.models = list.Models
	r.mu.Unlock()
	return nil
}

func (r *Registry) loadTemplates() error {
	var file templateFile
	if err := readConfig("templates", &file); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for key, tmpl := range file.Templates {
		docType, err := planning.ParseDocumentType(key)
		if err != nil {
			return err
		}
		r.templates[docType] = tmpl
	}
	for _, t := range planning.DocumentTypes {
		if _, ok := r.templates[t]; !ok {
			return fmt.Errorf("missing default template for %s", t)
		}
	}
	return nil
}

func (r *Registry) loadRubrics() error {
	var file rubricFile
	if err := readConfig("rubrics", &file); err != nil {
		return err
	}
	if strings.TrimSpace(file.Generic) == "" {
		return fmt.Errorf("generic rubric is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generic = file.Generic
	for key, rubric := range file.Rubrics {
		docType, err := planning.ParseDocumentType(key)
		if err != nil {
			return err
		}
		r.rubrics[docType] = rubric
	}
	return nil
}

func (r *Registry) loadPrompts() error {
	var p Prompts
	if err := readConfig("prompts", &p); err != nil {
		return err
	}
	if p.Evaluation == "" || p.Improvement == "" {
		return fmt.Errorf("evaluation and improvement prompts are required")
	}

	r.mu.Lock()
	r.prompts = p
	r.mu.Unlock()
	return nil
}

// Models returns all accepted models (ordered as defined in YAML)
func (r *Registry) Models() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}

// GetModel returns the catalog entry for a model identifier
func (r *Registry) GetModel(id string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.models {
		if r.models[i].ID == id {
			m := r.models[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("unknown model: %s", id)
}

// DefaultTemplate returns the built-in template for a document type
func (r *Registry) DefaultTemplate(docType planning.DocumentType) (DefaultTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[docType]
	return tmpl, ok
}

// Rubric returns the evaluation criteria for a document type.
// Unknown types get the generic rubric.
func (r *Registry) Rubric(docType planning.DocumentType) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rubric, ok := r.rubrics[docType]; ok {
		return rubric
	}
	return r.generic
}

// Prompts returns the pipeline prompts
func (r *Registry) Prompts() Prompts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prompts
}
