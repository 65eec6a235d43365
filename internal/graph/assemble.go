package graph

// EdgeSource is the minimal read surface the graph assembler needs from the
// store: node lookup and edge fetch by direction, both kind-filterable and
// limit-bounded. The store implements this directly; it is declared here so
// the assembler has no import-time dependency on the store package.
type EdgeSource interface {
	GetNode(id string) (*Node, error)
	EdgesFrom(sourceID string, kinds []EdgeKind, limit int) ([]Edge, error)
	EdgesTo(targetID string, kinds []EdgeKind, limit int) ([]Edge, error)
}

type queueItem struct {
	id    string
	depth int
}

// BuildSubgraph runs a bounded breadth-first traversal from roots, following
// edges through src according to opts. Containment is a forest but Calls
// edges may cycle through mutual recursion, so the walk tracks a visited
// set keyed by node id and never recurses.
func BuildSubgraph(src EdgeSource, roots []string, opts TraversalOptions) (*Subgraph, error) {
	if opts.MaxDepth <= 0 {
		opts = withDefaultDepth(opts)
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultTraversalOptions().Limit
	}
	if opts.Direction == "" {
		opts.Direction = DirectionBoth
	}

	out := &Subgraph{
		Nodes: make(map[string]*Node),
		Edges: make([]Edge, 0),
		Roots: append([]string(nil), roots...),
	}

	visited := make(map[string]bool, len(roots))
	queue := make([]queueItem, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, queueItem{id: r, depth: 0})
	}

	edgeBudget := opts.Limit

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth > opts.MaxDepth {
			continue
		}
		if visited[item.id] {
			continue
		}
		visited[item.id] = true

		if opts.IncludeStart || item.depth > 0 {
			node, err := src.GetNode(item.id)
			if err != nil {
				return nil, err
			}
			if node != nil && passesNodeKindFilter(node.Kind, opts.NodeKinds) {
				out.Nodes[node.ID] = node
			}
		}

		if edgeBudget <= 0 {
			continue
		}

		var edges []Edge
		if opts.Direction != DirectionIncoming {
			outEdges, err := src.EdgesFrom(item.id, opts.EdgeKinds, edgeBudget)
			if err != nil {
				return nil, err
			}
			edges = append(edges, outEdges...)
		}
		if opts.Direction != DirectionOutgoing {
			remaining := edgeBudget - len(edges)
			if remaining > 0 {
				inEdges, err := src.EdgesTo(item.id, opts.EdgeKinds, remaining)
				if err != nil {
					return nil, err
				}
				edges = append(edges, inEdges...)
			}
		}

		for _, e := range edges {
			if edgeBudget <= 0 {
				break
			}
			edgeBudget--
			out.Edges = append(out.Edges, e)

			other := e.Target
			if e.Target == item.id {
				other = e.Source
			}
			if !visited[other] && item.depth+1 <= opts.MaxDepth {
				queue = append(queue, queueItem{id: other, depth: item.depth + 1})
			}
		}
	}

	return out, nil
}

func withDefaultDepth(opts TraversalOptions) TraversalOptions {
	opts.MaxDepth = DefaultTraversalOptions().MaxDepth
	return opts
}

func passesNodeKindFilter(kind NodeKind, allowed []NodeKind) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
