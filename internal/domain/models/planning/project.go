package planning

import "time"

// GenerationMode selects how documents are produced for a project.
type GenerationMode string

const (
	// ModeStandard generates each document once and leaves review to the user.
	ModeStandard GenerationMode = "standard"
	// ModeAgent generates, evaluates and revises each document autonomously.
	ModeAgent GenerationMode = "agent"
)

type Project struct {
	ID          string                 `json:"id" db:"id"`
	UserID      string                 `json:"user_id" db:"user_id"`
	Name        string                 `json:"name" db:"name"`
	Description string                 `json:"description" db:"description"` // the project idea
	Mode        GenerationMode         `json:"mode" db:"mode"`
	TemplateSet string                 `json:"template_set,omitempty" db:"template_set"`
	Metadata    map[string]interface{} `json:"metadata" db:"metadata"`
	Summary     string                 `json:"summary" db:"summary"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" db:"updated_at"`
}
