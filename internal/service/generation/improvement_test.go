package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planforge/internal/domain/models/planning"
)

func TestBuildImprovementPrompt(t *testing.T) {
	tests := []struct {
		name     string
		docType  planning.DocumentType
		eval     *planning.Evaluation
		expected string
	}{
		{
			name:    "first type with suggestions",
			docType: planning.TypeProjectRequest,
			eval: &planning.Evaluation{
				Feedback:               "thin",
				ImprovementSuggestions: []string{"name the audience"},
			},
			expected: "Revise Project Request (1/6)\nthin\n1. name the audience\n---\nbody",
		},
		{
			name:     "last type without suggestions",
			docType:  planning.TypeImplementationPlan,
			eval:     &planning.Evaluation{Feedback: "fine"},
			expected: "Revise Implementation Plan (6/6)\nfine\n(none)\n---\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildImprovementPrompt(testImprovementPrompt, tt.docType, tt.eval, "body"))
		})
	}
}

func TestBuildImprovementPrompt_ContentIsVerbatim(t *testing.T) {
	content := "Uses {{FEEDBACK}} literally"
	out := BuildImprovementPrompt("{{CONTENT}}", planning.TypePRD, &planning.Evaluation{Feedback: "x"}, content)
	assert.Equal(t, content, out)
}
