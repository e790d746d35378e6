// Package cli implements the command-line entrypoint.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/category-task-api/internal/config"
	"github.com/yukikurage/category-task-api/internal/logger"
)

// Version information, set at build time with ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "taskapi",
		Short: "Multi-user category and task API",
		Long: `taskapi serves a JSON API where users register, sort their tasks
into categories and filter them by text and due date.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"), "YAML config file (env: CONFIG_FILE)")

	load := func(cmd *cobra.Command) (*config.Config, error) {
		cfg, err := config.LoadFrom(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.SetupDefault(logWriter(cmd), cfg.LogLevel)
		if cfg.UsesDefaultSecret() {
			slog.Warn("TOKEN_SECRET is not set; signing tokens with the built-in default secret")
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		newServeCommand(load),
		newMigrateCommand(load),
		newSweepCommand(load),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type configLoader func(cmd *cobra.Command) (*config.Config, error)

func logWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
