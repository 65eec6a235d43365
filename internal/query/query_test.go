package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

type fakeSource struct {
	nodes map[string]*graph.Node
	edges []graph.Edge
}

func (f *fakeSource) Search(query string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error) {
	var out []graph.SearchResult
	for _, n := range f.nodes {
		if n.Name == query && len(out) < limit {
			out = append(out, graph.SearchResult{Node: *n})
		}
	}
	return out, nil
}

func (f *fakeSource) FindByName(name string) ([]graph.Node, error) {
	var out []graph.Node
	for _, n := range f.nodes {
		if n.Name == name {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeSource) GetNode(id string) (*graph.Node, error) {
	return f.nodes[id], nil
}

func (f *fakeSource) EdgesFrom(sourceID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	return f.filter(func(e graph.Edge) bool { return e.Source == sourceID }, kinds, limit), nil
}

func (f *fakeSource) EdgesTo(targetID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	return f.filter(func(e graph.Edge) bool { return e.Target == targetID }, kinds, limit), nil
}

func (f *fakeSource) filter(match func(graph.Edge) bool, kinds []graph.EdgeKind, limit int) []graph.Edge {
	var out []graph.Edge
	for _, e := range f.edges {
		if len(out) >= limit {
			break
		}
		if !match(e) {
			continue
		}
		if len(kinds) > 0 {
			ok := false
			for _, k := range kinds {
				if e.Kind == k {
					ok = true
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func callGraphSource() *fakeSource {
	// main -calls-> helper <-calls- worker; helper -calls-> leaf.
	// file -contains-> helper (must never leak into callers/callees).
	return &fakeSource{
		nodes: map[string]*graph.Node{
			"main":   {ID: "main", Name: "main", Kind: graph.KindFunction, FilePath: "main.go"},
			"worker": {ID: "worker", Name: "worker", Kind: graph.KindFunction, FilePath: "worker.go"},
			"helper": {ID: "helper", Name: "helper", Kind: graph.KindFunction, FilePath: "util.go"},
			"leaf":   {ID: "leaf", Name: "leaf", Kind: graph.KindFunction, FilePath: "util.go"},
			"file":   {ID: "file", Name: "util.go", Kind: graph.KindFile, FilePath: "util.go"},
		},
		edges: []graph.Edge{
			{Source: "main", Target: "helper", Kind: graph.EdgeCalls},
			{Source: "worker", Target: "helper", Kind: graph.EdgeCalls},
			{Source: "helper", Target: "leaf", Kind: graph.EdgeCalls},
			{Source: "file", Target: "helper", Kind: graph.EdgeContains},
		},
	}
}

func TestCallersReturnsCallsEdgeSourcesOnly(t *testing.T) {
	src := callGraphSource()

	callers, err := Callers(src, "helper", 10)
	require.NoError(t, err)

	ids := make([]string, len(callers))
	for i, n := range callers {
		ids[i] = n.ID
	}
	assert.ElementsMatch(t, []string{"main", "worker"}, ids, "the Contains edge from the file is excluded")
}

func TestCalleesReturnsCallsEdgeTargets(t *testing.T) {
	src := callGraphSource()

	callees, err := Callees(src, "helper", 10)
	require.NoError(t, err)
	require.Len(t, callees, 1)
	assert.Equal(t, "leaf", callees[0].ID)
}

func TestCallersDeduplicatesRepeatCallSites(t *testing.T) {
	src := callGraphSource()
	src.edges = append(src.edges, graph.Edge{Source: "main", Target: "helper", Kind: graph.EdgeCalls, Line: 99})

	callers, err := Callers(src, "helper", 10)
	require.NoError(t, err)
	assert.Len(t, callers, 2, "two call sites from main still yield one caller entry")
}

func TestImpactDefaultsToIncomingCallsAndImports(t *testing.T) {
	src := callGraphSource()

	sg, err := Impact(src, []string{"helper"}, ImpactOptions{MaxDepth: 2, Limit: 50})
	require.NoError(t, err)

	assert.Contains(t, sg.Nodes, "main")
	assert.Contains(t, sg.Nodes, "worker")
	assert.NotContains(t, sg.Nodes, "leaf", "impact follows incoming edges only by default")
	assert.NotContains(t, sg.Nodes, "file", "Contains edges are outside the default impact kinds")
}

func TestSearchPassesThrough(t *testing.T) {
	src := callGraphSource()

	hits, err := Search(src, "helper", nil, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "helper", hits[0].Node.Name)
}
