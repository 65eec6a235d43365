package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/config"
	"github.com/greysquirr3l/coraline/internal/hooks"
	"github.com/greysquirr3l/coraline/internal/memory"
)

func newInitCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		doIndex  bool
		noHooks  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a .coraline/ project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveProjectRoot(pathFlag, args)
			if err != nil {
				return err
			}
			logger := newLogger(*jsonLogs)
			defer func() { _ = logger.Sync() }()

			if err := config.EnsureLayout(root); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			if err := config.Save(root, cfg); err != nil {
				return fmt.Errorf("init: %w", err)
			}
			logger.Infow("init.config", "path", config.Path(root))

			projectName := filepath.Base(root)
			if err := memory.Seed(root, projectName); err != nil {
				return fmt.Errorf("init: seed memories: %w", err)
			}
			logger.Infow("init.memories", "project", projectName)

			if !noHooks {
				hm := hooks.NewManager(root)
				if hm.IsGitRepository() {
					result := hm.Install()
					if result.Success {
						fmt.Fprintf(cmd.OutOrStdout(), "installed post-commit hook: %s\n", result.HookPath)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "hook not installed: %s\n", result.Message)
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "not a git repository; skipping hook install")
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized coraline project at %s\n", root)

			if doIndex {
				result, err := runIndexAll(root, cfg, false, logger)
				if err != nil {
					return fmt.Errorf("init: index: %w", err)
				}
				printIndexResult(cmd, result)
			}
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().BoolVar(&doIndex, "index", false, "run a full index immediately after initializing")
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "skip installing the git post-commit sync hook")
	return cmd
}
