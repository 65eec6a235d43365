package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/contextbuilder"
	"github.com/greysquirr3l/coraline/internal/store"
)

func newContextCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		maxNodes int
		maxCode  int
		noCode   bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "context <task>",
		Short: "Assemble task-oriented context: entry points, a subgraph, and optional code slices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := args[0]
			root, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}

			s, err := store.Open(root)
			if err != nil {
				return fmt.Errorf("context: %w", err)
			}
			defer s.Close()

			opts := contextbuilder.Options{
				MaxNodes:       maxNodes,
				MaxCodeBlocks:  maxCode,
				IncludeCode:    !noCode,
				IncludeCodeSet: true,
				Format:         contextbuilder.Format(format),
			}

			doc, err := contextbuilder.Build(root, s, task, opts)
			if err != nil {
				return fmt.Errorf("context: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 20, "maximum number of entry-point symbols")
	cmd.Flags().IntVar(&maxCode, "max-code", 5, "maximum number of source code slices to include")
	cmd.Flags().BoolVar(&noCode, "no-code", false, "omit source code slices from the result")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown or json")
	return cmd
}
