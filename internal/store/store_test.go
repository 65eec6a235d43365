package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleNode(id, name string, kind graph.NodeKind, filePath string) graph.Node {
	return graph.Node{
		ID:            id,
		Kind:          kind,
		Name:          name,
		QualifiedName: filePath + "::" + name,
		FilePath:      filePath,
		Language:      graph.LangGo,
		StartLine:     1,
		EndLine:       10,
		UpdatedAt:     Now(),
	}
}

func TestInsertAndGetNode(t *testing.T) {
	s := newTestStore(t)

	n := sampleNode("n1", "Add", graph.KindFunction, "main.go")
	require.NoError(t, s.InsertNodes([]graph.Node{n}))

	got, err := s.GetNode("n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Add", got.Name)
	assert.Equal(t, graph.KindFunction, got.Kind)
	assert.Equal(t, graph.LangGo, got.Language)

	missing, err := s.GetNode("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInsertNodesUpsertsOnConflict(t *testing.T) {
	s := newTestStore(t)

	n := sampleNode("n1", "Add", graph.KindFunction, "main.go")
	require.NoError(t, s.InsertNodes([]graph.Node{n}))

	n.Name = "Sum"
	n.EndLine = 20
	require.NoError(t, s.InsertNodes([]graph.Node{n}))

	got, err := s.GetNode("n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sum", got.Name)
	assert.Equal(t, int64(20), got.EndLine)

	all, err := s.FindByName("Sum")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEdgesFromAndEdgesTo(t *testing.T) {
	s := newTestStore(t)

	nodes := []graph.Node{
		sampleNode("caller", "main", graph.KindFunction, "main.go"),
		sampleNode("callee", "helper", graph.KindFunction, "helper.go"),
	}
	require.NoError(t, s.InsertNodes(nodes))

	edge := graph.Edge{Source: "caller", Target: "callee", Kind: graph.EdgeCalls, Line: 5}
	require.NoError(t, s.InsertEdges([]graph.Edge{edge}))

	out, err := s.EdgesFrom("caller", nil, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "callee", out[0].Target)
	assert.Equal(t, graph.EdgeCalls, out[0].Kind)

	in, err := s.EdgesTo("callee", []graph.EdgeKind{graph.EdgeCalls}, 10)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "caller", in[0].Source)

	none, err := s.EdgesTo("callee", []graph.EdgeKind{graph.EdgeImports}, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteFileCascadesToEdgesAndUnresolved(t *testing.T) {
	s := newTestStore(t)

	nodes := []graph.Node{
		sampleNode("caller", "main", graph.KindFunction, "main.go"),
		sampleNode("callee", "helper", graph.KindFunction, "helper.go"),
	}
	require.NoError(t, s.InsertNodes(nodes))
	require.NoError(t, s.InsertEdges([]graph.Edge{
		{Source: "caller", Target: "callee", Kind: graph.EdgeCalls},
	}))
	require.NoError(t, s.InsertUnresolved([]graph.UnresolvedReference{
		{FromNodeID: "caller", ReferenceName: "helper", ReferenceKind: graph.EdgeCalls},
	}))

	require.NoError(t, s.WithTransaction(func(tx *Store) error {
		return tx.DeleteFile("main.go")
	}))

	gone, err := s.GetNode("caller")
	require.NoError(t, err)
	assert.Nil(t, gone)

	edges, err := s.EdgesFrom("caller", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, edges)

	count, err := s.CountUnresolved()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	s := newTestStore(t)

	sentinel := assertError("boom")
	err := s.WithTransaction(func(tx *Store) error {
		n := sampleNode("n1", "Add", graph.KindFunction, "main.go")
		if insErr := tx.InsertNodes([]graph.Node{n}); insErr != nil {
			return insErr
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got, getErr := s.GetNode("n1")
	require.NoError(t, getErr)
	assert.Nil(t, got, "insert should have been rolled back")
}

func TestSearchRanksExactNameHitsFirst(t *testing.T) {
	s := newTestStore(t)

	nodes := []graph.Node{
		sampleNode("n1", "parse_config", graph.KindFunction, "config.go"),
		sampleNode("n2", "parse", graph.KindFunction, "parser.go"),
	}
	require.NoError(t, s.InsertNodes(nodes))

	results, err := s.Search("parse", nil, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Node.Name
	}
	assert.Contains(t, names, "parse")
	assert.Contains(t, names, "parse_config")
	assert.Equal(t, "parse", names[0])
}

func TestSearchFiltersByKind(t *testing.T) {
	s := newTestStore(t)

	nodes := []graph.Node{
		sampleNode("n1", "widget", graph.KindFunction, "a.go"),
		sampleNode("n2", "widget", graph.KindStruct, "b.go"),
	}
	require.NoError(t, s.InsertNodes(nodes))

	kind := graph.KindStruct
	results, err := s.Search("widget", &kind, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n2", results[0].Node.ID)
}

func TestUpsertFileAndGetFile(t *testing.T) {
	s := newTestStore(t)

	rec := graph.FileRecord{
		Path:        "main.go",
		ContentHash: "abc123",
		Language:    graph.LangGo,
		Size:        42,
		ModifiedAt:  1,
		IndexedAt:   2,
		NodeCount:   3,
	}
	require.NoError(t, s.UpsertFile(rec))

	got, err := s.GetFile("main.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.ContentHash)

	rec.ContentHash = "def456"
	require.NoError(t, s.UpsertFile(rec))

	got, err = s.GetFile("main.go")
	require.NoError(t, err)
	assert.Equal(t, "def456", got.ContentHash)
}

func TestClearRemovesAllRows(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertNodes([]graph.Node{sampleNode("n1", "Add", graph.KindFunction, "main.go")}))
	require.NoError(t, s.UpsertFile(graph.FileRecord{Path: "main.go", Language: graph.LangGo}))

	require.NoError(t, s.Clear())

	files, err := s.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	node, err := s.GetNode("n1")
	require.NoError(t, err)
	assert.Nil(t, node)
}

type assertError string

func (e assertError) Error() string { return string(e) }
