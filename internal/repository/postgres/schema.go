package postgres

import (
	"context"
	"fmt"
	"strings"

	"planforge/internal/domain/models/planning"
)

// Migrate creates the prefixed tables and indexes if they do not exist.
func Migrate(ctx context.Context, cfg *RepositoryConfig) error {
	pool := cfg.Pool
	tables := cfg.Tables

	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	typeList := "'" + strings.Join(planning.DocumentTypeStrings(), "', '") + "'"

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL DEFAULT 'standard' CHECK (mode IN ('standard', 'agent')),
			template_set TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			summary TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK (type IN (` + typeList + `)),
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'completed')),
			revision INTEGER NOT NULL DEFAULT 1,
			word_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(project_id, type)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Versions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			document_id UUID NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			source TEXT NOT NULL CHECK (source IN ('manual', 'ai-generator', 'agent-refinement')),
			revision INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Templates + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			type TEXT NOT NULL CHECK (type IN (` + typeList + `)),
			content TEXT NOT NULL,
			template_set TEXT NOT NULL DEFAULT '',
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `projects_user_updated ON ` + tables.Projects + `(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `versions_document_created ON ` + tables.Versions + `(document_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `templates_type ON ` + tables.Templates + `(type, is_default)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `templates_set_type ON ` + tables.Templates + `(template_set, type)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run schema: %w", err)
		}
	}

	cfg.Logger.Info("schema ready", "prefix", tables.Prefix)
	return nil
}

// DropAll drops every table in reverse dependency order.
func DropAll(ctx context.Context, cfg *RepositoryConfig) error {
	tableNames := []string{
		cfg.Tables.Versions,
		cfg.Tables.Documents,
		cfg.Tables.Templates,
		cfg.Tables.Projects,
	}

	for _, table := range tableNames {
		if _, err := cfg.Pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		cfg.Logger.Info("table dropped", "table", table)
	}

	return nil
}
