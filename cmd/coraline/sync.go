package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/config"
	"github.com/greysquirr3l/coraline/internal/indexer"
)

func newSyncCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Incrementally re-index files that changed since the last run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveProjectRoot(pathFlag, args)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			logger := newLogger(*jsonLogs)
			defer func() { _ = logger.Sync() }()

			logger.Infow("sync.start", "root", root)
			result, err := indexer.Sync(root, cfg, func(current, total int, relPath string) {
				logger.Debugw("sync.file", "current", current, "total", total, "path", relPath)
			})
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			logger.Infow("sync.done",
				"files_checked", result.FilesChecked,
				"files_added", result.FilesAdded,
				"files_modified", result.FilesModified,
				"files_removed", result.FilesRemoved,
				"duration", result.Duration.String(),
			)

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s): %d added, %d modified, %d removed (%s)\n",
					result.FilesChecked, result.FilesAdded, result.FilesModified, result.FilesRemoved, result.Duration.Round(1e6))
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", e.Severity, e.Message)
				}
			}

			for _, e := range result.Errors {
				if e.Severity == "error" {
					return fmt.Errorf("sync: completed with errors (see above)")
				}
			}
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress and summary output")
	return cmd
}
