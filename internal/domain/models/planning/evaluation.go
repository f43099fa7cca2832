package planning

// Evaluation is a rubric-based judgement of a document's content.
type Evaluation struct {
	Score                  int      `json:"score"` // 0-10
	Feedback               string   `json:"feedback"`
	MeetsCriteria          bool     `json:"meets_criteria"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}
