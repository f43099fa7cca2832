package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/config"
	"planforge/internal/domain/models/planning"
	planningSvc "planforge/internal/domain/services/planning"
)

type generateOptions struct {
	name      string
	idea      string
	mode      string
	model     string
	evaluator string
	out       string
	format    string
	store     string
}

func generateCmd(newLogger func() *slog.Logger) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every planning document for a new project",
		Example: `  planforge generate --name "Recipe box" --idea "An app for family recipes" --mode agent --out ./plan
  planforge generate --idea "A CLI for budgets" --model lorem-fast --evaluator lorem-fast --format html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, newLogger())
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "Untitled project", "Project name")
	cmd.Flags().StringVar(&opts.idea, "idea", "", "Project idea (required)")
	cmd.Flags().StringVar(&opts.mode, "mode", string(planning.ModeStandard), "Generation mode: standard or agent")
	cmd.Flags().StringVar(&opts.model, "model", "", "Primary model (default PRIMARY_MODEL)")
	cmd.Flags().StringVar(&opts.evaluator, "evaluator", "", "Evaluation model (default EVALUATION_MODEL)")
	cmd.Flags().StringVar(&opts.out, "out", ".", "Output directory")
	cmd.Flags().StringVar(&opts.format, "format", string(planningSvc.ExportMarkdown), "Output format: markdown (one file per document), html or zip (one file)")
	cmd.Flags().StringVar(&opts.store, "store", "memory", "Storage: memory or postgres")
	_ = cmd.MarkFlagRequired("idea")

	return cmd
}

func runGenerate(ctx context.Context, opts generateOptions, logger *slog.Logger) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	cfg := loadConfig()
	if opts.model != "" {
		cfg.PrimaryModel = opts.model
	}
	if opts.evaluator != "" {
		cfg.EvaluationModel = opts.evaluator
	}

	storage, err := openStorage(ctx, opts.store, cfg, logger)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, storage, app.Options{}, logger)
	if err != nil {
		storage.Close()
		return err
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		return err
	}

	project, err := a.Projects.CreateProject(ctx, &planningSvc.CreateProjectRequest{
		UserID:      cfg.DevUserID,
		Name:        opts.name,
		Description: opts.idea,
		Mode:        opts.mode,
	})
	if err != nil {
		return err
	}

	logger.Info("generating project",
		"project_id", project.ID,
		"mode", project.Mode,
		"model", cfg.PrimaryModel,
	)

	docs, genErr := generateDocuments(ctx, a.Generation, project)

	written, err := writeOutput(ctx, opts, a.Export, project, docs)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Println(path)
	}

	if genErr != nil {
		return fmt.Errorf("generation stopped after %d of %d documents: %w", len(docs), len(planning.DocumentTypes), genErr)
	}
	return nil
}

func validateFormat(format string) error {
	switch planningSvc.ExportFormat(format) {
	case planningSvc.ExportMarkdown, planningSvc.ExportHTML, planningSvc.ExportZip:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want markdown, html or zip)", format)
	}
}

func openStorage(ctx context.Context, kind string, cfg *config.Config, logger *slog.Logger) (*app.Storage, error) {
	switch kind {
	case "memory":
		return app.NewMemoryStorage(), nil
	case "postgres":
		return app.NewPostgresStorage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store %q (want memory or postgres)", kind)
	}
}

// generateDocuments refines the whole project in agent mode and generates each
// type once in standard mode. Documents finished before a failure are returned.
func generateDocuments(ctx context.Context, svc planningSvc.GenerationService, project *planning.Project) ([]planning.Document, error) {
	if project.Mode == planning.ModeAgent {
		return svc.GenerateProject(ctx, project.ID, project.UserID)
	}

	docs := make([]planning.Document, 0, len(planning.DocumentTypes))
	for _, docType := range planning.DocumentTypes {
		doc, err := svc.GenerateDocument(ctx, project.ID, project.UserID, docType)
		if err != nil {
			return docs, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// writeOutput writes <out>/<type>.md per document, or one HTML or zip export
func writeOutput(ctx context.Context, opts generateOptions, export planningSvc.ExportService, project *planning.Project, docs []planning.Document) ([]string, error) {
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	switch planningSvc.ExportFormat(opts.format) {
	case planningSvc.ExportMarkdown:
		paths := make([]string, 0, len(docs))
		for _, doc := range docs {
			path := filepath.Join(opts.out, string(doc.Type)+".md")
			if err := os.WriteFile(path, []byte(doc.Content+"\n"), 0o644); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
		return paths, nil

	case planningSvc.ExportHTML, planningSvc.ExportZip:
		rendered, err := export.ExportProject(ctx, project.ID, project.UserID, planningSvc.ExportFormat(opts.format))
		if err != nil {
			return nil, err
		}
		path := filepath.Join(opts.out, rendered.Filename)
		if err := os.WriteFile(path, rendered.Body, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		return []string{path}, nil

	default:
		return nil, validateFormat(opts.format)
	}
}
