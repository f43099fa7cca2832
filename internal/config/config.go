package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	AutoMigrate bool
	CORSOrigins string
	TablePrefix string
	// Auth
	JWKSURL   string // empty outside prod selects the dev-user middleware
	DevUserID string
	// LLM Configuration
	AnthropicAPIKey     string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	PrimaryModel        string
	EvaluationModel     string
	GenerationTimeout   time.Duration
	MaxRefineIterations int
	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		// Auth
		JWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		DevUserID: getEnv("DEV_USER_ID", "00000000-0000-0000-0000-000000000001"),
		// LLM Configuration
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		PrimaryModel:        getEnv("PRIMARY_MODEL", "claude-sonnet-4-5"),
		EvaluationModel:     getEnv("EVALUATION_MODEL", "claude-haiku-4-5"),
		GenerationTimeout:   getDuration("GENERATION_TIMEOUT", 90*time.Second),
		MaxRefineIterations: getInt("MAX_REFINE_ITERATIONS", DefaultMaxRefineIterations),
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
