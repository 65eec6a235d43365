package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/query"
	"github.com/greysquirr3l/coraline/internal/store"
)

func newQueryCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		kindFlag string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run a lexical search against the store's FTS index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			root, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}

			var kind *graph.NodeKind
			if kindFlag != "" {
				k := graph.NodeKind(kindFlag)
				kind = &k
			}

			s, err := store.Open(root)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			defer s.Close()

			results, err := query.Search(s, text, kind, limit)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			if asJSON {
				raw, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("query: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "no results")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "[%s] %s  %s:%d  (score %.3f)\n",
					r.Node.Kind, r.Node.Name, r.Node.FilePath, r.Node.StartLine, r.Score)
			}
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().StringVar(&kindFlag, "kind", "", "restrict results to a single node kind (e.g. function, class)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
