package generation

import (
	"fmt"
	"strconv"
	"strings"

	"planforge/internal/domain/models/planning"
	"planforge/internal/service/prompt"
)

const noSuggestions = "(none)"

// BuildImprovementPrompt fills the improvement template with the document's
// canonical position, its display name, the evaluation and the current content.
func BuildImprovementPrompt(template string, docType planning.DocumentType, eval *planning.Evaluation, content string) string {
	return prompt.Resolve(template, map[string]string{
		"POSITION":      strconv.Itoa(docType.Position() + 1),
		"TOTAL":         strconv.Itoa(len(planning.DocumentTypes)),
		"DOCUMENT_NAME": docType.DisplayName(),
		"FEEDBACK":      eval.Feedback,
		"SUGGESTIONS":   formatSuggestions(eval.ImprovementSuggestions),
		"CONTENT":       content,
	})
}

func formatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return noSuggestions
	}
	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, s)
	}
	return sb.String()
}
