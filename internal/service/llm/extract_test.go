package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		field    string
		expected string
	}{
		{"main field", `{"technical_spec": "# Spec"}`, "technical_spec", "# Spec"},
		{"generic content field", `{"content": "# Doc"}`, "prd", "# Doc"},
		{"first string property", `{"n": 3, "body": "text", "other": "x"}`, "prd", "text"},
		{"empty main field falls through", `{"prd": "  ", "content": "fallback"}`, "prd", "fallback"},
		{"object without strings", `{"n": 3}`, "prd", ""},
		{"empty main field only", `{"prd": ""}`, "prd", ""},
		{"blank main field only", `{"prd": "   "}`, "prd", ""},
		{"fenced json", "```json\n{\"prd\": \"# PRD\"}\n```", "prd", "# PRD"},
		{"plain text", "  # Just markdown\n", "prd", "# Just markdown"},
		{"json array is returned whole", `["a"]`, "prd", `["a"]`},
		{"empty", "", "prd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractContent(tt.raw, tt.field))
		})
	}
}

func TestParseEvaluation(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		eval, ok := ParseEvaluation(`{"score": 8, "feedback": "solid", "meets_criteria": true, "improvement_suggestions": ["a", " ", "b"]}`)
		require.True(t, ok)
		assert.Equal(t, 8, eval.Score)
		assert.Equal(t, "solid", eval.Feedback)
		assert.True(t, eval.MeetsCriteria)
		assert.Equal(t, []string{"a", "b"}, eval.ImprovementSuggestions)
	})

	t.Run("embedded in prose", func(t *testing.T) {
		eval, ok := ParseEvaluation("Here you go:\n{\"score\": 4, \"meets_criteria\": false}\nThanks")
		require.True(t, ok)
		assert.Equal(t, 4, eval.Score)
		assert.False(t, eval.MeetsCriteria)
		assert.Empty(t, eval.ImprovementSuggestions)
	})

	t.Run("score is clamped", func(t *testing.T) {
		eval, ok := ParseEvaluation(`{"score": 14.6, "meets_criteria": true}`)
		require.True(t, ok)
		assert.Equal(t, 10, eval.Score)

		eval, ok = ParseEvaluation(`{"score": -2}`)
		require.True(t, ok)
		assert.Equal(t, 0, eval.Score)
	})

	t.Run("single suggestion string", func(t *testing.T) {
		eval, ok := ParseEvaluation(`{"score": 6, "improvement_suggestions": "add metrics"}`)
		require.True(t, ok)
		assert.Equal(t, []string{"add metrics"}, eval.ImprovementSuggestions)
	})

	for _, raw := range []string{"looks good", `{"feedback": "no score"}`, "{broken", `[1,2]`} {
		t.Run("unparseable "+raw, func(t *testing.T) {
			_, ok := ParseEvaluation(raw)
			assert.False(t, ok)
		})
	}
}

func TestDegradedEvaluation(t *testing.T) {
	eval := DegradedEvaluation("looks good")
	assert.Equal(t, 5, eval.Score)
	assert.Equal(t, "looks good", eval.Feedback)
	assert.False(t, eval.MeetsCriteria)
	assert.Equal(t, []string{ParseFailureNotice}, eval.ImprovementSuggestions)
}

func TestSchemaFor(t *testing.T) {
	schema := SchemaFor("technical-spec")
	assert.Equal(t, "technical_spec", schema.Field)
	assert.Equal(t, []string{"technical_spec"}, schema.Schema["required"])

	generic := SchemaFor("roadmap")
	assert.Equal(t, "content", generic.Field)
}
