// Package contextbuilder assembles task-oriented context for an external
// tool consumer: a lexical search for entry points, a bounded subgraph
// around them, optional source-code slices, and a rendered document.
package contextbuilder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// Format selects the rendered document shape build_context returns.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Options configures one build_context call. Zero values fall back to the
// defaults: max_nodes 20, max_code_blocks 5,
// max_code_block_size 1500, include_code true, traversal_depth 1, format
// markdown.
type Options struct {
	MaxNodes         int
	MaxCodeBlocks    int
	MaxCodeBlockSize int
	IncludeCode      bool
	IncludeCodeSet   bool
	TraversalDepth   int
	Format           Format
}

func (o Options) withDefaults() Options {
	if o.MaxNodes <= 0 {
		o.MaxNodes = 20
	}
	if o.MaxCodeBlocks <= 0 {
		o.MaxCodeBlocks = 5
	}
	if o.MaxCodeBlockSize <= 0 {
		o.MaxCodeBlockSize = 1500
	}
	if !o.IncludeCodeSet {
		o.IncludeCode = true
	}
	if o.TraversalDepth <= 0 {
		o.TraversalDepth = 1
	}
	if o.Format == "" {
		o.Format = FormatMarkdown
	}
	return o
}

// Source is the store read surface build_context needs: lexical search
// plus the graph assembler's node/edge lookups.
type Source interface {
	Search(query string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error)
	graph.EdgeSource
}

// CodeBlock is one source-text slice attached to an entry point.
type CodeBlock struct {
	Content   string        `json:"content"`
	FilePath  string        `json:"file_path"`
	StartLine int64         `json:"start_line"`
	EndLine   int64         `json:"end_line"`
	Language  graph.Language `json:"language"`
	Node      *graph.Node   `json:"node,omitempty"`
}

// Stats summarizes the assembled context's size.
type Stats struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	FileCount     int `json:"file_count"`
	CodeBlockCount int `json:"code_block_count"`
	TotalCodeSize int `json:"total_code_size"`
}

// TaskContext is the full assembled result, serialized verbatim for
// FormatJSON and rendered to markdown for FormatMarkdown.
type TaskContext struct {
	Query        string        `json:"query"`
	Subgraph     *graph.Subgraph `json:"subgraph"`
	EntryPoints  []graph.Node  `json:"entry_points"`
	CodeBlocks   []CodeBlock   `json:"code_blocks"`
	RelatedFiles []string      `json:"related_files"`
	Summary      string        `json:"summary"`
	Stats        Stats         `json:"stats"`
}

// Build runs store.Search(task) for entry points, assembles a bounded
// subgraph around them (Contains+Calls edges, both directions, depth
// traversalDepth, edge budget max_nodes*4), optionally slices source text
// for the first max_code_blocks hits, and renders the result per
// opts.Format.
func Build(projectRoot string, src Source, task string, opts Options) (string, error) {
	opts = opts.withDefaults()

	results, err := src.Search(task, nil, opts.MaxNodes)
	if err != nil {
		return "", fmt.Errorf("contextbuilder: search: %w", err)
	}

	entryPoints := make([]graph.Node, len(results))
	rootIDs := make([]string, len(results))
	for i, r := range results {
		entryPoints[i] = r.Node
		rootIDs[i] = r.Node.ID
	}

	traversal := graph.TraversalOptions{
		MaxDepth:     opts.TraversalDepth,
		EdgeKinds:    []graph.EdgeKind{graph.EdgeContains, graph.EdgeCalls},
		Direction:    graph.DirectionBoth,
		Limit:        opts.MaxNodes * 4,
		IncludeStart: true,
	}

	subgraph, err := graph.BuildSubgraph(src, rootIDs, traversal)
	if err != nil {
		subgraph = fallbackSubgraph(entryPoints)
	}

	var codeBlocks []CodeBlock
	if opts.IncludeCode {
		codeBlocks = extractCodeBlocks(projectRoot, results, opts.MaxCodeBlocks, opts.MaxCodeBlockSize)
	}

	relatedFiles := relatedFilesOf(subgraph)

	totalSize := 0
	for _, b := range codeBlocks {
		totalSize += len(b.Content)
	}

	ctx := TaskContext{
		Query:        task,
		Subgraph:     subgraph,
		EntryPoints:  entryPoints,
		CodeBlocks:   codeBlocks,
		RelatedFiles: relatedFiles,
		Summary:      fmt.Sprintf("Found %d relevant symbols across %d files.", len(entryPoints), len(relatedFiles)),
		Stats: Stats{
			NodeCount:      len(subgraph.Nodes),
			EdgeCount:      len(subgraph.Edges),
			FileCount:      len(relatedFiles),
			CodeBlockCount: len(codeBlocks),
			TotalCodeSize:  totalSize,
		},
	}

	switch opts.Format {
	case FormatJSON:
		raw, err := json.MarshalIndent(ctx, "", "  ")
		if err != nil {
			return "", fmt.Errorf("contextbuilder: marshal: %w", err)
		}
		return string(raw), nil
	default:
		return renderMarkdown(ctx), nil
	}
}

func fallbackSubgraph(entryPoints []graph.Node) *graph.Subgraph {
	nodes := make(map[string]*graph.Node, len(entryPoints))
	roots := make([]string, len(entryPoints))
	for i := range entryPoints {
		n := entryPoints[i]
		nodes[n.ID] = &n
		roots[i] = n.ID
	}
	return &graph.Subgraph{Nodes: nodes, Roots: roots}
}

func relatedFilesOf(sg *graph.Subgraph) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range sg.Nodes {
		if !seen[n.FilePath] {
			seen[n.FilePath] = true
			out = append(out, n.FilePath)
		}
	}
	return out
}

func extractCodeBlocks(projectRoot string, results []graph.SearchResult, maxBlocks, maxSize int) []CodeBlock {
	var blocks []CodeBlock
	for i, r := range results {
		if i >= maxBlocks {
			break
		}
		node := r.Node
		content, err := os.ReadFile(filepath.Join(projectRoot, node.FilePath))
		if err != nil {
			continue
		}

		lines := strings.Split(string(content), "\n")
		startIdx := int(node.StartLine) - 1
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx := int(node.EndLine)
		if endIdx > len(lines) {
			endIdx = len(lines)
		}
		if startIdx >= endIdx {
			continue
		}

		slice := strings.Join(lines[startIdx:endIdx], "\n")
		if len(slice) > maxSize {
			slice = slice[:maxSize] + "\n// ... truncated ..."
		}

		n := node
		blocks = append(blocks, CodeBlock{
			Content:   slice,
			FilePath:  node.FilePath,
			StartLine: node.StartLine,
			EndLine:   node.EndLine,
			Language:  node.Language,
			Node:      &n,
		})
	}
	return blocks
}

func renderMarkdown(ctx TaskContext) string {
	var b strings.Builder
	b.WriteString("## Code Context\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", ctx.Query)

	if len(ctx.EntryPoints) > 0 {
		b.WriteString("### Entry Points\n\n")
		for _, n := range ctx.EntryPoints {
			fmt.Fprintf(&b, "- **%s** (%s) - %s:%d\n", n.Name, n.Kind, n.FilePath, n.StartLine)
		}
		b.WriteString("\n")
	}

	if len(ctx.CodeBlocks) > 0 {
		b.WriteString("### Code\n\n")
		for _, block := range ctx.CodeBlocks {
			header := block.FilePath
			if block.Node != nil {
				header = fmt.Sprintf("%s (%s)", block.Node.Name, block.FilePath)
			}
			fmt.Fprintf(&b, "#### %s\n\n", header)
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", block.Language, block.Content)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
