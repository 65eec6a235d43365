package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// newRootCmd assembles the coraline command tree. Each subcommand accepts
// an optional --path flag (or a positional project-root argument where
// noted) and defaults to the current working directory.
func newRootCmd() *cobra.Command {
	var jsonLogs bool

	root := &cobra.Command{
		Use:           "coraline",
		Short:         "Build and query a persistent knowledge graph of a source repository",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured JSON logs instead of human-readable ones")

	root.AddCommand(
		newInitCmd(&jsonLogs),
		newIndexCmd(&jsonLogs),
		newSyncCmd(&jsonLogs),
		newStatusCmd(&jsonLogs),
		newQueryCmd(&jsonLogs),
		newContextCmd(&jsonLogs),
		newHooksCmd(),
		newServeCmd(&jsonLogs),
	)
	return root
}

// newLogger builds the CLI's ambient structured logger: a development
// (human-readable) encoder by default, a production (JSON) encoder when
// --json-logs is passed.
func newLogger(jsonLogs bool) *zap.SugaredLogger {
	var cfg zap.Config
	if jsonLogs {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// resolveProjectRoot honors an explicit --path flag, falls back to a
// single positional argument, and defaults to the current working
// directory.
func resolveProjectRoot(pathFlag string, args []string) (string, error) {
	candidate := pathFlag
	if candidate == "" && len(args) > 0 {
		candidate = args[0]
	}
	if candidate == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", candidate, err)
	}
	return abs, nil
}

func addPathFlag(cmd *cobra.Command, pathFlag *string) {
	cmd.Flags().StringVar(pathFlag, "path", "", "project root directory (default: current working directory)")
}
