package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"planforge/internal/app"
	"planforge/internal/auth"
	"planforge/internal/config"
	"planforge/internal/handler"
	"planforge/internal/middleware"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := cfg.NewLogger("server", config.LogJSON, os.Stdout, cfg.Level())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := app.NewPostgresStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	application, err := app.New(cfg, storage, app.Options{}, logger)
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}
	defer application.Close()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start services: %v", err)
	}

	authMiddleware, err := setupAuth(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up auth: %v", err)
	}

	mux := handler.NewRouter(handler.Handlers{
		Projects:   handler.NewProjectHandler(application.Projects, application.Export, logger),
		Documents:  handler.NewDocumentHandler(application.Documents, logger),
		Templates:  handler.NewTemplateHandler(application.Templates, logger),
		Generation: handler.NewGenerationHandler(application.Generation, logger),
		Models:     handler.NewModelsHandler(application.Catalog, application.Providers, cfg.PrimaryModel, cfg.EvaluationModel, logger),
		Health:     handler.HealthCheck(storage.Ping),
		Metrics:    application.Metrics.Handler(),
	})

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	// Order: CORS → RequestID → Recovery → Auth → Routes
	h := middleware.Chain(mux,
		corsHandler.Handler,
		middleware.RequestID,
		middleware.Recovery(logger),
		authMiddleware,
	)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 15 * time.Second,
		// Agent-mode generation of a whole project runs for minutes
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

// setupAuth verifies JWTs against the JWKS endpoint. Outside prod an empty
// AUTH_JWKS_URL falls back to a fixed development user.
func setupAuth(ctx context.Context, cfg *config.Config, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	if cfg.JWKSURL == "" {
		if cfg.Environment == "prod" {
			return nil, errors.New("AUTH_JWKS_URL is required in prod")
		}
		logger.Warn("AUTH_JWKS_URL not set, all requests run as the dev user", "user_id", cfg.DevUserID)
		return middleware.DevAuth(cfg.DevUserID), nil
	}

	verifier, err := auth.NewJWTVerifier(ctx, cfg.JWKSURL, logger)
	if err != nil {
		return nil, err
	}
	return middleware.Auth(verifier, logger, "/health", "/metrics"), nil
}
