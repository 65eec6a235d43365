package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEdgeSource is an in-memory EdgeSource for exercising the BFS without
// a database.
type fakeEdgeSource struct {
	nodes map[string]*Node
	edges []Edge
}

func (f *fakeEdgeSource) GetNode(id string) (*Node, error) {
	return f.nodes[id], nil
}

func (f *fakeEdgeSource) EdgesFrom(sourceID string, kinds []EdgeKind, limit int) ([]Edge, error) {
	return f.filter(func(e Edge) bool { return e.Source == sourceID }, kinds, limit), nil
}

func (f *fakeEdgeSource) EdgesTo(targetID string, kinds []EdgeKind, limit int) ([]Edge, error) {
	return f.filter(func(e Edge) bool { return e.Target == targetID }, kinds, limit), nil
}

func (f *fakeEdgeSource) filter(match func(Edge) bool, kinds []EdgeKind, limit int) []Edge {
	var out []Edge
	for _, e := range f.edges {
		if len(out) >= limit {
			break
		}
		if !match(e) {
			continue
		}
		if len(kinds) > 0 {
			found := false
			for _, k := range kinds {
				if e.Kind == k {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func chainSource() *fakeEdgeSource {
	// file -contains-> a -calls-> b -calls-> c, plus b -calls-> a (cycle).
	nodes := map[string]*Node{
		"file": {ID: "file", Kind: KindFile, Name: "main.rs"},
		"a":    {ID: "a", Kind: KindFunction, Name: "a"},
		"b":    {ID: "b", Kind: KindFunction, Name: "b"},
		"c":    {ID: "c", Kind: KindFunction, Name: "c"},
	}
	edges := []Edge{
		{Source: "file", Target: "a", Kind: EdgeContains},
		{Source: "a", Target: "b", Kind: EdgeCalls},
		{Source: "b", Target: "c", Kind: EdgeCalls},
		{Source: "b", Target: "a", Kind: EdgeCalls},
	}
	return &fakeEdgeSource{nodes: nodes, edges: edges}
}

func TestBuildSubgraphDepthOne(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 1, Direction: DirectionOutgoing, Limit: 100, IncludeStart: true,
	})
	require.NoError(t, err)

	assert.Contains(t, sg.Nodes, "a")
	assert.Contains(t, sg.Nodes, "b")
	assert.NotContains(t, sg.Nodes, "c", "c is two hops out")
	assert.Equal(t, []string{"a"}, sg.Roots)
}

func TestBuildSubgraphSurvivesCycles(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 10, Direction: DirectionBoth, Limit: 100, IncludeStart: true,
	})
	require.NoError(t, err)

	// a <-> b mutual recursion must terminate and include every node once.
	assert.Len(t, sg.Nodes, 4)
}

func TestBuildSubgraphEdgeKindFilter(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 2, EdgeKinds: []EdgeKind{EdgeContains}, Direction: DirectionBoth, Limit: 100, IncludeStart: true,
	})
	require.NoError(t, err)

	for _, e := range sg.Edges {
		assert.Equal(t, EdgeContains, e.Kind)
	}
	assert.NotContains(t, sg.Nodes, "c")
}

func TestBuildSubgraphNodeKindFilter(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 2, NodeKinds: []NodeKind{KindFunction}, Direction: DirectionBoth, Limit: 100, IncludeStart: true,
	})
	require.NoError(t, err)

	assert.NotContains(t, sg.Nodes, "file")
	assert.Contains(t, sg.Nodes, "a")
}

func TestBuildSubgraphRespectsEdgeBudget(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 10, Direction: DirectionBoth, Limit: 1, IncludeStart: true,
	})
	require.NoError(t, err)
	assert.Len(t, sg.Edges, 1)
}

func TestBuildSubgraphExcludeStart(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"a"}, TraversalOptions{
		MaxDepth: 1, Direction: DirectionOutgoing, Limit: 100, IncludeStart: false,
	})
	require.NoError(t, err)

	assert.NotContains(t, sg.Nodes, "a")
	assert.Contains(t, sg.Nodes, "b")
}

func TestBuildSubgraphIncomingOnly(t *testing.T) {
	sg, err := BuildSubgraph(chainSource(), []string{"c"}, TraversalOptions{
		MaxDepth: 1, Direction: DirectionIncoming, Limit: 100, IncludeStart: true,
	})
	require.NoError(t, err)

	assert.Contains(t, sg.Nodes, "b", "b calls c")
	require.Len(t, sg.Edges, 2, "b->c from c, then a->b fetched for b at the depth limit")
	assert.Equal(t, "b", sg.Edges[0].Source)
}
