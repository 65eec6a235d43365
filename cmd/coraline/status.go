package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/store"
)

func newStatusCmd(jsonLogs *bool) *cobra.Command {
	var pathFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show file, node, edge, and unresolved-reference counts for the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveProjectRoot(pathFlag, args)
			if err != nil {
				return err
			}

			s, err := store.Open(root)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not yet indexed (run `coraline init` then `coraline index`)")
				return nil
			}
			defer s.Close()

			files, err := s.ListFiles()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			edgesByKind, err := s.CountEdgesByKind()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			unresolved, err := s.CountUnresolved()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}

			var totalNodes int
			var totalEdges int
			for _, f := range files {
				totalNodes += int(f.NodeCount)
			}
			for _, c := range edgesByKind {
				totalEdges += c
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "project: %s\n", root)
			fmt.Fprintf(out, "files:   %d\n", len(files))
			fmt.Fprintf(out, "nodes:   %d\n", totalNodes)
			fmt.Fprintf(out, "edges:   %d\n", totalEdges)
			if len(edgesByKind) > 0 {
				kinds := make([]string, 0, len(edgesByKind))
				for k := range edgesByKind {
					kinds = append(kinds, string(k))
				}
				sort.Strings(kinds)
				for _, k := range kinds {
					fmt.Fprintf(out, "  %-12s %d\n", k, edgesByKind[graph.EdgeKind(k)])
				}
			}
			fmt.Fprintf(out, "unresolved references: %d\n", unresolved)
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	return cmd
}
