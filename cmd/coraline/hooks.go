package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/hooks"
)

func newHooksCmd() *cobra.Command {
	var pathFlag string

	root := &cobra.Command{
		Use:   "hooks",
		Short: "Install, remove, or inspect the git post-commit sync hook",
	}
	root.PersistentFlags().StringVar(&pathFlag, "path", "", "project root directory (default: current working directory)")

	root.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install the post-commit hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			projRoot, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}
			result := hooks.NewManager(projRoot).Install()
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			if !result.Success {
				return fmt.Errorf("hooks install: %s", result.Message)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the post-commit hook, restoring any displaced hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			projRoot, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}
			result := hooks.NewManager(projRoot).Remove()
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			if !result.Success {
				return fmt.Errorf("hooks remove: %s", result.Message)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the post-commit hook is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			projRoot, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}
			m := hooks.NewManager(projRoot)
			switch {
			case !m.IsGitRepository():
				fmt.Fprintln(cmd.OutOrStdout(), "not a git repository")
			case m.IsInstalled():
				fmt.Fprintln(cmd.OutOrStdout(), "installed")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "not installed")
			}
			return nil
		},
	})

	return root
}
