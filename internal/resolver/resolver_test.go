package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// fakeSource is an in-memory resolver.Source for exercising the ranking
// ladder without a database.
type fakeSource struct {
	unresolved []graph.UnresolvedReference
	nodes      map[string]*graph.Node

	insertedEdges []graph.Edge
	deletedIDs    []int64
}

func (f *fakeSource) ListUnresolved(limit int) ([]graph.UnresolvedReference, error) {
	if limit < len(f.unresolved) {
		return f.unresolved[:limit], nil
	}
	return f.unresolved, nil
}

func (f *fakeSource) GetNode(id string) (*graph.Node, error) {
	return f.nodes[id], nil
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

func (f *fakeSource) FindCallableByName(name string) ([]graph.Node, error) {
	var out []graph.Node
	for _, n := range f.nodes {
		if n.Name == name && n.Kind.IsCallable() {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeSource) FindExportsByModule(modulePath string) ([]graph.Node, error) {
	var out []graph.Node
	for _, n := range f.nodes {
		if n.Kind == graph.KindExport && n.Signature == modulePath {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeSource) FindImportsInFile(filePath, name string) ([]graph.Node, error) {
	var out []graph.Node
	for _, n := range f.nodes {
		if n.Kind == graph.KindImport && n.FilePath == filePath && n.Name == name {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeSource) InsertEdges(edges []graph.Edge) error {
	f.insertedEdges = append(f.insertedEdges, edges...)
	return nil
}

func (f *fakeSource) DeleteUnresolved(ids []int64) error {
	f.deletedIDs = append(f.deletedIDs, ids...)
	return nil
}

func node(id, name string, kind graph.NodeKind, filePath string) *graph.Node {
	return &graph.Node{ID: id, Name: name, Kind: kind, FilePath: filePath, QualifiedName: filePath + "::" + name}
}

func TestResolvePrefersSameFileCandidate(t *testing.T) {
	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.ts"),
			"local":  node("local", "helper", graph.KindFunction, "src/app.ts"),
			"far":    node("far", "helper", graph.KindFunction, "lib/far.ts"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 1, FromNodeID: "caller", ReferenceName: "helper", ReferenceKind: graph.EdgeCalls, Line: 3},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)

	require.Len(t, src.insertedEdges, 1)
	assert.Equal(t, "caller", src.insertedEdges[0].Source)
	assert.Equal(t, "local", src.insertedEdges[0].Target)
	assert.Equal(t, graph.EdgeCalls, src.insertedEdges[0].Kind)
	assert.Equal(t, []int64{1}, src.deletedIDs)
}

func TestResolveUsesImportHintExportMatch(t *testing.T) {
	imp := node("imp", "helper", graph.KindImport, "src/app.ts")
	imp.Signature = "./util|export=helper"

	exp := node("exp", "helper", graph.KindExport, "src/util.ts")
	exp.Signature = "./util"

	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.ts"),
			"imp":    imp,
			"exp":    exp,
			"t1":     node("t1", "helper", graph.KindFunction, "src/util.ts"),
			"t2":     node("t2", "helper", graph.KindFunction, "other/noise.ts"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 7, FromNodeID: "caller", ReferenceName: "helper", ReferenceKind: graph.EdgeCalls},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)

	require.Len(t, src.insertedEdges, 1)
	assert.Equal(t, "exp", src.insertedEdges[0].Target, "the export-table match wins over name candidates")
}

func TestResolveImportHintPathSuffixMatch(t *testing.T) {
	imp := node("imp", "add", graph.KindImport, "src/app.rs")
	imp.Signature = "crate::math::add"

	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.rs"),
			"imp":    imp,
			"t1":     node("t1", "add", graph.KindFunction, "lib/math.rs"),
			"t2":     node("t2", "add", graph.KindFunction, "vendor/other.rs"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 2, FromNodeID: "caller", ReferenceName: "add", ReferenceKind: graph.EdgeCalls},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
	require.Len(t, src.insertedEdges, 1)
	assert.Equal(t, "t1", src.insertedEdges[0].Target, "file stem matching the hint's module segment wins")
}

func TestResolveLeavesAmbiguousReferences(t *testing.T) {
	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.ts"),
			"t1":     node("t1", "helper", graph.KindFunction, "lib/a.ts"),
			"t2":     node("t2", "helper", graph.KindFunction, "lib/b.ts"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 3, FromNodeID: "caller", ReferenceName: "helper", ReferenceKind: graph.EdgeCalls},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Zero(t, result.Resolved)
	assert.Equal(t, 1, result.Remaining)
	assert.Empty(t, src.insertedEdges)
	assert.Empty(t, src.deletedIDs)
}

func TestResolveIgnoresNonCallableForCallsKind(t *testing.T) {
	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.ts"),
			"v1":     node("v1", "helper", graph.KindVariable, "src/app.ts"),
			"t1":     node("t1", "helper", graph.KindFunction, "lib/a.ts"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 4, FromNodeID: "caller", ReferenceName: "helper", ReferenceKind: graph.EdgeCalls},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
	require.Len(t, src.insertedEdges, 1)
	assert.Equal(t, "t1", src.insertedEdges[0].Target, "Calls references only consider Function/Method candidates")
}

func TestResolveModRsDirectoryTolerance(t *testing.T) {
	imp := node("imp", "store", graph.KindImport, "src/app.rs")
	imp.Signature = "crate::store"

	src := &fakeSource{
		nodes: map[string]*graph.Node{
			"caller": node("caller", "run", graph.KindFunction, "src/app.rs"),
			"imp":    imp,
			"t1":     node("t1", "store", graph.KindFunction, "src/store/mod.rs"),
			"t2":     node("t2", "store", graph.KindFunction, "vendor/noise.rs"),
		},
		unresolved: []graph.UnresolvedReference{
			{ID: 5, FromNodeID: "caller", ReferenceName: "store", ReferenceKind: graph.EdgeCalls},
		},
	}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
	require.Len(t, src.insertedEdges, 1)
	assert.Equal(t, "t1", src.insertedEdges[0].Target)
}

func TestResolveEmptyQueueIsANoop(t *testing.T) {
	src := &fakeSource{nodes: map[string]*graph.Node{}}

	result, err := Resolve(src, 0)
	require.NoError(t, err)
	assert.Zero(t, result.Scanned)
	assert.Empty(t, src.insertedEdges)
}
