package llm

import (
	"strings"

	"planforge/internal/domain/models/planning"
	domainllm "planforge/internal/domain/services/llm"
)

// genericContentField holds the text of documents without a dedicated schema.
const genericContentField = "content"

// SchemaFor returns the structured-output schema for a document type.
// Its single required property is named after the type, e.g. technical_spec.
func SchemaFor(docType planning.DocumentType) *domainllm.OutputSchema {
	field := genericContentField
	description := "The complete document as markdown."
	if docType.Valid() {
		field = strings.ReplaceAll(string(docType), "-", "_")
		description = "The complete " + docType.DisplayName() + " as markdown."
	}

	return &domainllm.OutputSchema{
		Name:  field + "_document",
		Field: field,
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				field: map[string]interface{}{
					"type":        "string",
					"description": description,
				},
			},
			"required":             []string{field},
			"additionalProperties": false,
		},
	}
}

// EvaluationSchema returns the structured-output schema of an evaluation reply.
func EvaluationSchema() *domainllm.OutputSchema {
	return &domainllm.OutputSchema{
		Name: "evaluation",
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"score": map[string]interface{}{
					"type":        "integer",
					"description": "Overall quality from 0 to 10.",
				},
				"feedback": map[string]interface{}{
					"type": "string",
				},
				"meets_criteria": map[string]interface{}{
					"type": "boolean",
				},
				"improvement_suggestions": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
			},
			"required":             []string{"score", "feedback", "meets_criteria", "improvement_suggestions"},
			"additionalProperties": false,
		},
	}
}
