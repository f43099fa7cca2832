// Command planforge is the operator CLI: schema migration, template
// seeding and offline project generation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"planforge/internal/config"
)

const (
	Version = "0.1.0"
	appName = "planforge"
)

// BuildTime is set with -ldflags
var BuildTime = "dev"

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Generate project planning documents with LLMs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	newLogger := func() *slog.Logger {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(logLevel)}))
	}

	cmd.AddCommand(
		migrateCmd(newLogger),
		seedTemplatesCmd(newLogger),
		generateCmd(newLogger),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s, %s)\n", appName, Version, BuildTime, runtime.Version())
			},
		},
	)

	return cmd
}

// loadConfig reads the environment and disables auto-migration; commands
// that need the schema migrate explicitly
func loadConfig() *config.Config {
	cfg := config.Load()
	cfg.AutoMigrate = false
	return cfg
}
