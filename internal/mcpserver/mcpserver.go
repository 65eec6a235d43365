// Package mcpserver adapts the query/context/memory/indexing surface to
// the Model Context Protocol for `serve --mcp`. Tools are thin
// projections over internal/store, internal/query, and
// internal/contextbuilder — no business logic lives here.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/greysquirr3l/coraline/internal/config"
	"github.com/greysquirr3l/coraline/internal/contextbuilder"
	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/indexer"
	"github.com/greysquirr3l/coraline/internal/memory"
	"github.com/greysquirr3l/coraline/internal/query"
	"github.com/greysquirr3l/coraline/internal/store"
)

// Server wraps the MCP server with tool handlers bound to a single
// project's store.
type Server struct {
	mcp         *mcp.Server
	store       *store.Store
	projectRoot string
	logger      *zap.SugaredLogger
	handlers    map[string]mcp.ToolHandler
}

// NewServer creates an MCP server with every coraline tool registered
// against the store at projectRoot.
func NewServer(projectRoot string, s *store.Store, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	srv := &Server{
		store:       s,
		projectRoot: projectRoot,
		logger:      logger,
		handlers:    make(map[string]mcp.ToolHandler),
	}

	srv.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "coraline",
		Version: "0.1.0",
	}, nil)

	srv.registerTools()
	return srv
}

// MCPServer returns the underlying protocol server, for Run(ctx, transport).
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) addTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mcp.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}

// CallTool invokes a registered tool by name directly, bypassing protocol
// transport. The package tests use it to exercise handlers.
func (s *Server) CallTool(ctx context.Context, name string, argsJSON json.RawMessage) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if len(argsJSON) == 0 {
		argsJSON = json.RawMessage(`{}`)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: argsJSON},
	}
	return handler(ctx, req)
}

// ToolNames returns every registered tool name, sorted.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) registerTools() {
	s.registerSearchTool()
	s.registerCallersCalleesTools()
	s.registerImpactTool()
	s.registerContextTool()
	s.registerIndexTools()
	s.registerMemoryTools()
}

func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal: " + err.Error())
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}, IsError: true}
}

func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

func getStringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64)
	if !ok {
		return defaultVal
	}
	return int(f)
}

func (s *Server) registerSearchTool() {
	s.addTool(&mcp.Tool{
		Name:        "search",
		Description: "Lexical search over the indexed symbol graph (functions, classes, modules, files). Returns matches ranked by relevance.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search text"},
				"kind": {"type": "string", "description": "Optional node kind filter, e.g. function, class, file"},
				"limit": {"type": "integer", "description": "Max results (default 20)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearch)
}

func (s *Server) handleSearch(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	var kind *graph.NodeKind
	if k := getStringArg(args, "kind"); k != "" {
		nk := graph.NodeKind(k)
		kind = &nk
	}

	limit := getIntArg(args, "limit", 20)
	results, err := query.Search(s.store, getStringArg(args, "query"), kind, limit)
	if err != nil {
		s.logger.Errorw("search failed", "err", err)
		return errResult(fmt.Sprintf("search: %v", err)), nil
	}
	return jsonResult(results), nil
}

func (s *Server) registerCallersCalleesTools() {
	s.addTool(&mcp.Tool{
		Name:        "callers",
		Description: "List direct callers of a node by id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"node_id": {"type": "string"},
				"limit": {"type": "integer"}
			},
			"required": ["node_id"]
		}`),
	}, s.handleCallers)

	s.addTool(&mcp.Tool{
		Name:        "callees",
		Description: "List direct callees of a node by id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"node_id": {"type": "string"},
				"limit": {"type": "integer"}
			},
			"required": ["node_id"]
		}`),
	}, s.handleCallees)
}

func (s *Server) handleCallers(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	nodes, err := query.Callers(s.store, getStringArg(args, "node_id"), getIntArg(args, "limit", 50))
	if err != nil {
		return errResult(fmt.Sprintf("callers: %v", err)), nil
	}
	return jsonResult(nodes), nil
}

func (s *Server) handleCallees(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	nodes, err := query.Callees(s.store, getStringArg(args, "node_id"), getIntArg(args, "limit", 50))
	if err != nil {
		return errResult(fmt.Sprintf("callees: %v", err)), nil
	}
	return jsonResult(nodes), nil
}

func (s *Server) registerImpactTool() {
	s.addTool(&mcp.Tool{
		Name:        "impact",
		Description: "Bounded traversal of what depends on a node (reverse Calls/Imports edges), for change-impact analysis.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"node_id": {"type": "string"},
				"max_depth": {"type": "integer"},
				"limit": {"type": "integer"}
			},
			"required": ["node_id"]
		}`),
	}, s.handleImpact)
}

func (s *Server) handleImpact(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	opts := query.ImpactOptions{
		MaxDepth: getIntArg(args, "max_depth", 2),
		Limit:    getIntArg(args, "limit", 100),
	}
	sg, err := query.Impact(s.store, []string{getStringArg(args, "node_id")}, opts)
	if err != nil {
		return errResult(fmt.Sprintf("impact: %v", err)), nil
	}
	return jsonResult(sg), nil
}

func (s *Server) registerContextTool() {
	s.addTool(&mcp.Tool{
		Name:        "build_context",
		Description: "Assemble task-oriented context for a free-text task: relevant entry points, a bounded subgraph, and source code slices, rendered as markdown.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"task": {"type": "string"},
				"max_nodes": {"type": "integer"},
				"format": {"type": "string", "enum": ["markdown", "json"]}
			},
			"required": ["task"]
		}`),
	}, s.handleBuildContext)
}

func (s *Server) handleBuildContext(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	opts := contextbuilder.Options{MaxNodes: getIntArg(args, "max_nodes", 20)}
	if getStringArg(args, "format") == "json" {
		opts.Format = contextbuilder.FormatJSON
	}

	text, err := contextbuilder.Build(s.projectRoot, s.store, getStringArg(args, "task"), opts)
	if err != nil {
		return errResult(fmt.Sprintf("build_context: %v", err)), nil
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}, nil
}

func (s *Server) registerIndexTools() {
	s.addTool(&mcp.Tool{
		Name:        "sync",
		Description: "Incrementally re-index the project: add/modify/remove files by content hash comparison against the store.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleSync)
}

func (s *Server) handleSync(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load(s.projectRoot)
	if err != nil {
		return errResult(fmt.Sprintf("sync: %v", err)), nil
	}
	result, err := indexer.Sync(s.projectRoot, cfg, nil)
	if err != nil {
		s.logger.Errorw("sync failed", "err", err)
		return errResult(fmt.Sprintf("sync: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (s *Server) registerMemoryTools() {
	s.addTool(&mcp.Tool{
		Name:        "write_memory",
		Description: "Write or update a project memory note under .coraline/memories/.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"content": {"type": "string"}
			},
			"required": ["name", "content"]
		}`),
	}, s.handleWriteMemory)

	s.addTool(&mcp.Tool{
		Name:        "read_memory",
		Description: "Read a project memory note by name.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {"name": {"type": "string"}},
			"required": ["name"]
		}`),
	}, s.handleReadMemory)

	s.addTool(&mcp.Tool{
		Name:        "list_memories",
		Description: "List all project memory notes.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListMemories)
}

func (s *Server) handleWriteMemory(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	m, err := memory.NewManager(s.projectRoot)
	if err != nil {
		return errResult(fmt.Sprintf("write_memory: %v", err)), nil
	}
	name := getStringArg(args, "name")
	if err := m.Write(name, getStringArg(args, "content")); err != nil {
		return errResult(fmt.Sprintf("write_memory: %v", err)), nil
	}
	return jsonResult(map[string]string{"status": fmt.Sprintf("memory %q written", name)}), nil
}

func (s *Server) handleReadMemory(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	m, err := memory.NewManager(s.projectRoot)
	if err != nil {
		return errResult(fmt.Sprintf("read_memory: %v", err)), nil
	}
	content, err := m.Read(getStringArg(args, "name"))
	if err != nil {
		return errResult(fmt.Sprintf("read_memory: %v", err)), nil
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: content}}}, nil
}

func (s *Server) handleListMemories(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := memory.NewManager(s.projectRoot)
	if err != nil {
		return errResult(fmt.Sprintf("list_memories: %v", err)), nil
	}
	names, err := m.List()
	if err != nil {
		return errResult(fmt.Sprintf("list_memories: %v", err)), nil
	}
	return jsonResult(names), nil
}
