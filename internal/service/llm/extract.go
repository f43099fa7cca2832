package llm

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"planforge/internal/domain/models/planning"
)

// ParseFailureNotice is the suggestion attached to evaluations whose reply was not JSON.
const ParseFailureNotice = "Evaluation response could not be parsed as JSON; review the content manually."

// ExtractContent returns the best text in a generation reply. For a JSON
// object it tries field, then "content", then the first non-empty string
// property. An object with no usable string yields "". Replies that are not JSON objects are
// returned trimmed.
func ExtractContent(raw, field string) string {
	text := strings.TrimSpace(stripCodeFence(raw))
	if !gjson.Valid(text) {
		return strings.TrimSpace(raw)
	}

	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return text
	}

	for _, key := range []string{field, genericContentField} {
		if key == "" {
			continue
		}
		if v := parsed.Get(gjson.Escape(key)); v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return strings.TrimSpace(v.String())
		}
	}

	var found string
	parsed.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			found = strings.TrimSpace(v.String())
			return false
		}
		return true
	})
	return found
}

// ParseEvaluation reads an evaluation reply. It accepts a bare JSON object,
// a fenced one, or one embedded in prose. ok is false when no object with
// a score or meets_criteria property is found.
func ParseEvaluation(raw string) (eval *planning.Evaluation, ok bool) {
	text := strings.TrimSpace(stripCodeFence(raw))
	if !gjson.Valid(text) {
		start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, false
		}
		text = text[start : end+1]
		if !gjson.Valid(text) {
			return nil, false
		}
	}

	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return nil, false
	}
	score, meets := parsed.Get("score"), parsed.Get("meets_criteria")
	if !score.Exists() && !meets.Exists() {
		return nil, false
	}

	suggestions := []string{}
	if s := parsed.Get("improvement_suggestions"); s.IsArray() {
		for _, item := range s.Array() {
			if v := strings.TrimSpace(item.String()); v != "" {
				suggestions = append(suggestions, v)
			}
		}
	} else if v := strings.TrimSpace(s.String()); v != "" {
		suggestions = append(suggestions, v)
	}

	return &planning.Evaluation{
		Score:                  clampScore(score.Float()),
		Feedback:               strings.TrimSpace(parsed.Get("feedback").String()),
		MeetsCriteria:          meets.Bool(),
		ImprovementSuggestions: suggestions,
	}, true
}

// DegradedEvaluation is the neutral failing result for an unparseable reply.
func DegradedEvaluation(raw string) *planning.Evaluation {
	return &planning.Evaluation{
		Score:                  5,
		Feedback:               strings.TrimSpace(raw),
		MeetsCriteria:          false,
		ImprovementSuggestions: []string{ParseFailureNotice},
	}
}

func clampScore(f float64) int {
	score := int(math.Round(f))
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// stripCodeFence removes a ``` fence wrapping the whole reply.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		return t[nl+1:]
	}
	return strings.TrimPrefix(t, "```")
}
