package planning

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	planningRepo "planforge/internal/domain/repositories/planning"
	"planforge/internal/repository/postgres"
)

const templateColumns = `id, name, type, content, template_set, is_default, created_at, updated_at`

// PostgresTemplateRepository implements the TemplateRepository interface
type PostgresTemplateRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(config *postgres.RepositoryConfig) planningRepo.TemplateRepository {
	return &PostgresTemplateRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a template
func (r *PostgresTemplateRepository) Create(ctx context.Context, tmpl *models.Template) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, type, content, template_set, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		tmpl.Name,
		tmpl.Type,
		tmpl.Content,
		tmpl.TemplateSet,
		tmpl.IsDefault,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	).Scan(&tmpl.ID, &tmpl.CreatedAt, &tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", postgres.CheckViolation(err))
	}

	return nil
}

// GetByID retrieves a template by ID
func (r *PostgresTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, templateColumns, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	tmpl, err := scanTemplate(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	return tmpl, nil
}

// List returns templates ordered by canonical type, then name
func (r *PostgresTemplateRepository) List(ctx context.Context, docType models.DocumentType) ([]models.Template, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE ($1 = '' OR type = $1)
		ORDER BY array_position($2::text[], type), name
	`, templateColumns, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, string(docType), models.DocumentTypeStrings())
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}

// Update persists name, content, default flag and updated_at
func (r *PostgresTemplateRepository) Update(ctx context.Context, tmpl *models.Template) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, content = $2, is_default = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, tmpl.Name, tmpl.Content, tmpl.IsDefault, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", tmpl.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a template
func (r *PostgresTemplateRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetDefault returns the default template for a type
func (r *PostgresTemplateRepository) GetDefault(ctx context.Context, docType models.DocumentType) (*models.Template, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE type = $1 AND is_default
		ORDER BY updated_at DESC
		LIMIT 1
	`, templateColumns, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	tmpl, err := scanTemplate(executor.QueryRow(ctx, query, docType))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("default template for %s: %w", docType, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get default template: %w", err)
	}

	return tmpl, nil
}

// GetForSet returns the most recently updated template of a set for a type
func (r *PostgresTemplateRepository) GetForSet(ctx context.Context, templateSet string, docType models.DocumentType) (*models.Template, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE template_set = $1 AND type = $2
		ORDER BY updated_at DESC
		LIMIT 1
	`, templateColumns, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	tmpl, err := scanTemplate(executor.QueryRow(ctx, query, templateSet, docType))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("template %s/%s: %w", templateSet, docType, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get template for set: %w", err)
	}

	return tmpl, nil
}

// ClearDefault unflags every default template of a type
func (r *PostgresTemplateRepository) ClearDefault(ctx context.Context, docType models.DocumentType) error {
	query := fmt.Sprintf(`UPDATE %s SET is_default = FALSE WHERE type = $1 AND is_default`, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, docType); err != nil {
		return fmt.Errorf("clear default template: %w", err)
	}
	return nil
}

// Count returns the total number of templates
func (r *PostgresTemplateRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Templates)

	var n int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return n, nil
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var tmpl models.Template
	err := row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.Type,
		&tmpl.Content,
		&tmpl.TemplateSet,
		&tmpl.IsDefault,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}
