package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greysquirr3l/coraline/internal/config"
	"github.com/greysquirr3l/coraline/internal/indexer"
)

func newIndexCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		force    bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the project from scratch (or re-index everything with --force)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveProjectRoot(pathFlag, args)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			logger := newLogger(*jsonLogs)
			defer func() { _ = logger.Sync() }()

			result, err := runIndexAll(root, cfg, force, logger)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			if !quiet {
				printIndexResult(cmd, result)
			}
			if !result.Success {
				return fmt.Errorf("index: completed with errors (see above)")
			}
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().BoolVar(&force, "force", false, "clear the store and re-extract every file")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress and summary output")
	return cmd
}

// runIndexAll drives indexer.IndexAll with a progress callback that logs
// one line per file at debug level.
func runIndexAll(root string, cfg config.Config, force bool, logger *zap.SugaredLogger) (indexer.IndexResult, error) {
	logger.Infow("index.start", "root", root, "force", force)
	result, err := indexer.IndexAll(root, cfg, force, func(current, total int, relPath string) {
		logger.Debugw("index.file", "current", current, "total", total, "path", relPath)
	})
	if err != nil {
		return result, err
	}
	logger.Infow("index.done",
		"files_indexed", result.FilesIndexed,
		"files_skipped", result.FilesSkipped,
		"nodes_created", result.NodesCreated,
		"edges_created", result.EdgesCreated,
		"duration", result.Duration.String(),
		"success", result.Success,
	)
	return result, nil
}

func printIndexResult(cmd *cobra.Command, result indexer.IndexResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "indexed %d file(s), skipped %d, %d node(s), %d edge(s) in %s\n",
		result.FilesIndexed, result.FilesSkipped, result.NodesCreated, result.EdgesCreated, result.Duration.Round(1e6))
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  [%s] %s\n", e.Severity, e.Message)
	}
}
