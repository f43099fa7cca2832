package planning

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/service/planning/converter/sanitizer"
	"planforge/internal/utils"
)

// exportService implements the ExportService interface
type exportService struct {
	projectRepo planningRepo.ProjectRepository
	docRepo     planningRepo.DocumentRepository
	markdown    goldmark.Markdown
	sanitizer   *sanitizer.HTMLSanitizer
	logger      *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	projectRepo planningRepo.ProjectRepository,
	docRepo planningRepo.DocumentRepository,
	logger *slog.Logger,
) planningSvc.ExportService {
	return &exportService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		markdown:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer:   sanitizer.NewHTMLSanitizer(),
		logger:      logger,
	}
}

// ExportProject renders every document of the project, in canonical order, as one file
func (s *exportService) ExportProject(ctx context.Context, projectID, userID string, format planningSvc.ExportFormat) (*planningSvc.Export, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	models.SortDocuments(docs)

	bundle := MarkdownBundle(project, docs)
	base := slugify(project.Name)

	switch format {
	case "", planningSvc.ExportMarkdown:
		return &planningSvc.Export{
			Filename:    base + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Body:        []byte(bundle),
		}, nil
	case planningSvc.ExportHTML:
		body, err := s.renderHTML(project.Name, bundle)
		if err != nil {
			return nil, err
		}
		return &planningSvc.Export{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        body,
		}, nil
	case planningSvc.ExportZip:
		body, err := zipDocuments(docs)
		if err != nil {
			return nil, err
		}
		return &planningSvc.Export{
			Filename:    base + ".zip",
			ContentType: "application/zip",
			Body:        body,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, format)
	}
}

// MarkdownBundle joins documents under H2 display-name headings below the project name
func MarkdownBundle(project *models.Project, docs []models.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", project.Name)
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", doc.Type.DisplayName(), strings.TrimSpace(doc.Content))
	}
	return b.String()
}

func (s *exportService) renderHTML(title, bundle string) ([]byte, error) {
	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(bundle), &rendered); err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	out.WriteString(html.EscapeString(title))
	out.WriteString("</title>\n</head>\n<body>\n")
	out.WriteString(s.sanitizer.Sanitize(rendered.String()))
	out.WriteString("\n</body>\n</html>\n")
	return out.Bytes(), nil
}

type documentFrontmatter struct {
	Type     string `yaml:"type"`
	Title    string `yaml:"title"`
	Status   string `yaml:"status"`
	Revision int    `yaml:"revision"`
	Updated  string `yaml:"updated"`
}

// zipDocuments writes NN-<type>.md entries so archive order matches canonical order
func zipDocuments(docs []models.Document) ([]byte, error) {
	files := make([]utils.ArchiveFile, 0, len(docs))
	for _, doc := range docs {
		content, err := utils.WithFrontmatter(documentFrontmatter{
			Type:     string(doc.Type),
			Title:    doc.Type.DisplayName(),
			Status:   string(doc.Status),
			Revision: doc.Revision,
			Updated:  doc.UpdatedAt.UTC().Format(time.RFC3339),
		}, strings.TrimSpace(doc.Content)+"\n")
		if err != nil {
			return nil, err
		}
		files = append(files, utils.ArchiveFile{
			Name:     fmt.Sprintf("%02d-%s.md", doc.Type.Position()+1, doc.Type),
			Content:  []byte(content),
			Modified: doc.UpdatedAt,
		})
	}

	buf, err := utils.CreateZip(files)
	if err != nil {
		return nil, fmt.Errorf("build export archive: %w", err)
	}
	return buf.Bytes(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "project"
	}
	return slug
}
