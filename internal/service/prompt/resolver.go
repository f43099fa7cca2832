// Package prompt fills {{TOKEN}} placeholders in prompt templates.
package prompt

import (
	"sort"
	"strings"

	"planforge/internal/domain/models/planning"
)

// IdeaKey is the placeholder bound to the project's idea text.
const IdeaKey = "IDEA"

// Resolve replaces every {{KEY}} in template whose KEY is in values.
// Tokens without a value are left as they are, and substituted text is never
// scanned again.
func Resolve(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", values[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// PlaceholderMap binds the idea to IDEA and each prior document's content to
// its type's upper-snake key, e.g. TECHNICAL_SPEC.
func PlaceholderMap(idea string, prior []planning.Document) map[string]string {
	values := make(map[string]string, len(prior)+1)
	values[IdeaKey] = idea
	for _, doc := range prior {
		values[doc.Type.PlaceholderKey()] = doc.Content
	}
	return values
}
