package app

import (
	"context"
	"fmt"
	"log/slog"

	"planforge/internal/config"
	"planforge/internal/domain/repositories"
	planningRepo "planforge/internal/domain/repositories/planning"
	"planforge/internal/repository/memory"
	"planforge/internal/repository/postgres"
	postgresPlanning "planforge/internal/repository/postgres/planning"
)

// Storage bundles the repositories of one backing store
type Storage struct {
	Projects  planningRepo.ProjectRepository
	Documents planningRepo.DocumentRepository
	Versions  planningRepo.VersionRepository
	Templates planningRepo.TemplateRepository
	TxManager repositories.TransactionManager

	// Ping checks connectivity; nil for in-memory storage
	Ping func(ctx context.Context) error

	// RepoConfig is set for Postgres storage
	RepoConfig *postgres.RepositoryConfig

	close func()
}

// Close releases the store's connections
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewMemoryStorage returns process-local storage
func NewMemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		Projects:  store.Projects(),
		Documents: store.Documents(),
		Versions:  store.Versions(),
		Templates: store.Templates(),
		TxManager: store.TransactionManager(),
	}
}

// NewPostgresStorage connects to cfg.DatabaseURL, migrating first when
// cfg.AutoMigrate is set
func NewPostgresStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
		"table_prefix", cfg.TablePrefix,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, repoConfig); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema migrated")
	}

	return &Storage{
		Projects:   postgresPlanning.NewProjectRepository(repoConfig),
		Documents:  postgresPlanning.NewDocumentRepository(repoConfig),
		Versions:   postgresPlanning.NewVersionRepository(repoConfig),
		Templates:  postgresPlanning.NewTemplateRepository(repoConfig),
		TxManager:  postgres.NewTransactionManager(pool, logger),
		Ping:       pool.Ping,
		RepoConfig: repoConfig,
		close:      pool.Close,
	}, nil
}
