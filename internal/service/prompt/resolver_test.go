package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planforge/internal/domain/models/planning"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		expected string
	}{
		{"replaces every occurrence", "Hello {{IDEA}} and {{IDEA}}", map[string]string{"IDEA": "X"}, "Hello X and X"},
		{"unmatched token passes through", "Hello {{MISSING}}", map[string]string{}, "Hello {{MISSING}}"},
		{"nil values", "Hello {{IDEA}}", nil, "Hello {{IDEA}}"},
		{"keys are case sensitive", "{{idea}} {{IDEA}}", map[string]string{"IDEA": "X"}, "{{idea}} X"},
		{"values are not rescanned", "{{A}}", map[string]string{"A": "{{B}}", "B": "no"}, "{{B}}"},
		{"mixed", "{{IDEA}}\n{{PRD}}\n{{UI_GUIDE}}", map[string]string{"IDEA": "i", "PRD": "p"}, "i\np\n{{UI_GUIDE}}"},
		{"unterminated token", "{{IDEA", map[string]string{"IDEA": "X"}, "{{IDEA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.template, tt.values))
		})
	}
}

func TestPlaceholderMap(t *testing.T) {
	prior := []planning.Document{
		{Type: planning.TypeProjectRequest, Content: "request"},
		{Type: planning.TypeTechnicalSpec, Content: "spec"},
	}

	values := PlaceholderMap("the idea", prior)

	assert.Equal(t, map[string]string{
		"IDEA":            "the idea",
		"PROJECT_REQUEST": "request",
		"TECHNICAL_SPEC":  "spec",
	}, values)
}
