package catalog

import "gopkg.in/yaml.v3"

// Model roles
const (
	RolePrimary    = "primary"
	RoleEvaluation = "evaluation"
)

// Model describes one accepted model identifier
type Model struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	Provider    string   `yaml:"provider" json:"provider"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Roles       []string `yaml:"roles" json:"roles"`
	MaxOutput   int      `yaml:"max_output" json:"max_output"`
}

// HasRole reports whether the model may be used for role
func (m Model) HasRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// modelList is the models.yaml document
type modelList struct {
	Models []Model `yaml:"-"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML preserves model order from the YAML file
func (l *modelList) UnmarshalYAML(node *yaml.Node) error {
	type modelsOnly struct {
		Models map[string]Model `yaml:"models"`
	}
	var m modelsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		modelsNode := node.Content[i+1]
		// modelsNode.Content alternates: key, value, key, value...
		for j := 0; j < len(modelsNode.Content); j += 2 {
			id := modelsNode.Content[j].Value
			if model, ok := m.Models[id]; ok {
				model.ID = id
				l.Models = append(l.Models, model)
			}
		}
		break
	}
	return nil
}

// DefaultTemplate is a built-in prompt template
type DefaultTemplate struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

type templateFile struct {
	Templates map[string]DefaultTemplate `yaml:"templates"`
}

type rubricFile struct {
	Generic string            `yaml:"generic"`
	Rubrics map[string]string `yaml:"rubrics"`
}

// Prompts holds the fixed prompts of the generation pipeline
type Prompts struct {
	System      string `yaml:"system"`
	Evaluation  string `yaml:"evaluation"`
	Improvement string `yaml:"improvement"`
}
