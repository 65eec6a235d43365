// Command coraline is the operator-facing CLI over the knowledge-graph
// core: init/index/sync/status/query/context/hooks/serve.
// Every subcommand is a thin adapter over internal/indexer,
// internal/query, internal/contextbuilder, internal/hooks,
// internal/memory, and internal/mcpserver — no business logic lives here.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
