// Package query implements the thin query-surface projections: lexical
// search, callers, callees, and impact traversal. Every operation here is a direct composition of
// internal/store and internal/graph — no new state or algorithm lives in
// this package.
package query

import (
	"github.com/greysquirr3l/coraline/internal/graph"
)

// Source is the store surface the query projections read.
type Source interface {
	Search(query string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error)
	FindByName(name string) ([]graph.Node, error)
	graph.EdgeSource
}

// Search runs a lexical query against the store's FTS index.
func Search(src Source, text string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error) {
	return src.Search(text, kind, limit)
}

// Callers returns the direct Calls-edge predecessors of nodeID: every node
// with an outgoing Calls edge targeting it.
func Callers(src Source, nodeID string, limit int) ([]graph.Node, error) {
	edges, err := src.EdgesTo(nodeID, []graph.EdgeKind{graph.EdgeCalls}, limit)
	if err != nil {
		return nil, err
	}
	return resolveEndpoints(src, edges, func(e graph.Edge) string { return e.Source })
}

// Callees returns the direct Calls-edge successors of nodeID: every node
// nodeID has an outgoing Calls edge to.
func Callees(src Source, nodeID string, limit int) ([]graph.Node, error) {
	edges, err := src.EdgesFrom(nodeID, []graph.EdgeKind{graph.EdgeCalls}, limit)
	if err != nil {
		return nil, err
	}
	return resolveEndpoints(src, edges, func(e graph.Edge) string { return e.Target })
}

func resolveEndpoints(src Source, edges []graph.Edge, pick func(graph.Edge) string) ([]graph.Node, error) {
	seen := make(map[string]bool, len(edges))
	var out []graph.Node
	for _, e := range edges {
		id := pick(e)
		if seen[id] {
			continue
		}
		seen[id] = true
		node, err := src.GetNode(id)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, *node)
		}
	}
	return out, nil
}

// ImpactOptions configures an impact traversal: how far out to follow
// edges and which directions/kinds count as "impact".
type ImpactOptions struct {
	MaxDepth  int
	Direction graph.TraversalDirection
	EdgeKinds []graph.EdgeKind
	Limit     int
}

// Impact runs a bounded BFS from rootIDs to find everything that could be
// affected by a change to them — by default, incoming Calls/Imports edges
// (what depends on this symbol).
func Impact(src Source, rootIDs []string, opts ImpactOptions) (*graph.Subgraph, error) {
	traversal := graph.TraversalOptions{
		MaxDepth:     opts.MaxDepth,
		EdgeKinds:    opts.EdgeKinds,
		Direction:    opts.Direction,
		Limit:        opts.Limit,
		IncludeStart: true,
	}
	if traversal.EdgeKinds == nil {
		traversal.EdgeKinds = []graph.EdgeKind{graph.EdgeCalls, graph.EdgeImports}
	}
	if traversal.Direction == "" {
		traversal.Direction = graph.DirectionIncoming
	}
	return graph.BuildSubgraph(src, rootIDs, traversal)
}
