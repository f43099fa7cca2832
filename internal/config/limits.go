package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255

	// MaxIdeaLength is the maximum length of a project's idea description.
	// The idea is injected into every prompt, so it must stay well inside
	// the model context window alongside five prior documents.
	MaxIdeaLength = 20000

	// MaxTemplateNameLength is the maximum length for template names.
	MaxTemplateNameLength = 255

	// MaxTemplateSetLength is the maximum length of a template set identifier.
	MaxTemplateSetLength = 100

	// MaxTemplateContentLength is the maximum length of a prompt template.
	MaxTemplateContentLength = 100000

	// MaxDocumentContentLength is the maximum length of a document's content.
	MaxDocumentContentLength = 500000

	// MaxSummaryLength is the maximum length of a project's derived summary.
	MaxSummaryLength = 500

	// DefaultMaxRefineIterations bounds the agent-mode revise loop.
	DefaultMaxRefineIterations = 3

	// DefaultMaxOutputTokens caps a single document generation.
	DefaultMaxOutputTokens = 8192

	// EvaluationMaxOutputTokens caps a single evaluation reply.
	EvaluationMaxOutputTokens = 2048
)
