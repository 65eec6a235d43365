package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/greysquirr3l/coraline/internal/mcpserver"
	"github.com/greysquirr3l/coraline/internal/store"
)

func newServeCmd(jsonLogs *bool) *cobra.Command {
	var (
		pathFlag string
		mcpFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool-invocation protocol over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !mcpFlag {
				return fmt.Errorf("serve: only --mcp is supported")
			}
			root, err := resolveProjectRoot(pathFlag, nil)
			if err != nil {
				return err
			}

			s, err := store.Open(root)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer s.Close()

			logger := newLogger(*jsonLogs)
			defer func() { _ = logger.Sync() }()

			srv := mcpserver.NewServer(root, s, logger)
			logger.Infow("serve.start", "root", root, "tools", srv.ToolNames())

			if err := srv.MCPServer().Run(context.Background(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	addPathFlag(cmd, &pathFlag)
	cmd.Flags().BoolVar(&mcpFlag, "mcp", false, "serve the Model Context Protocol dialect over stdio (required)")
	return cmd
}
