package contextbuilder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// fakeSource serves canned search hits and edges without a database.
type fakeSource struct {
	hits  []graph.SearchResult
	nodes map[string]*graph.Node
	edges []graph.Edge
}

func (f *fakeSource) Search(query string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error) {
	if limit < len(f.hits) {
		return f.hits[:limit], nil
	}
	return f.hits, nil
}

func (f *fakeSource) GetNode(id string) (*graph.Node, error) {
	return f.nodes[id], nil
}

func (f *fakeSource) EdgesFrom(sourceID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	var out []graph.Edge
	for _, e := range f.edges {
		if e.Source == sourceID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) EdgesTo(targetID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	var out []graph.Edge
	for _, e := range f.edges {
		if e.Target == targetID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func fixtureSource(t *testing.T) (string, *fakeSource) {
	t.Helper()
	root := t.TempDir()

	mathSrc := "export function add(a: number, b: number): number {\n  return a + b;\n}\n\nexport class Calculator {\n}\n"
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "math.ts"), []byte(mathSrc), 0o644))

	addNode := &graph.Node{
		ID: "add-id", Kind: graph.KindFunction, Name: "add",
		QualifiedName: "src/math.ts::add", FilePath: "src/math.ts",
		Language: graph.LangTypeScript, StartLine: 1, EndLine: 3,
	}
	calcNode := &graph.Node{
		ID: "calc-id", Kind: graph.KindClass, Name: "Calculator",
		QualifiedName: "src/math.ts::Calculator", FilePath: "src/math.ts",
		Language: graph.LangTypeScript, StartLine: 5, EndLine: 6,
	}

	src := &fakeSource{
		hits: []graph.SearchResult{
			{Node: *addNode, Score: -2},
			{Node: *calcNode, Score: -1},
		},
		nodes: map[string]*graph.Node{"add-id": addNode, "calc-id": calcNode},
		edges: []graph.Edge{
			{Source: "calc-id", Target: "add-id", Kind: graph.EdgeContains},
		},
	}
	return root, src
}

func TestBuildMarkdownDocument(t *testing.T) {
	root, src := fixtureSource(t)

	doc, err := Build(root, src, "calculator functionality", Options{MaxCodeBlocks: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Contains(t, doc, "calculator functionality")
	assert.True(t, strings.Contains(doc, "Calculator") || strings.Contains(doc, "add"))
	assert.Contains(t, doc, "```", "at least one fenced code block")
	assert.Contains(t, doc, "return a + b;", "sliced source lines are embedded")
}

func TestBuildJSONEnvelope(t *testing.T) {
	root, src := fixtureSource(t)

	doc, err := Build(root, src, "math", Options{Format: FormatJSON})
	require.NoError(t, err)

	var ctx TaskContext
	require.NoError(t, json.Unmarshal([]byte(doc), &ctx))
	assert.Equal(t, "math", ctx.Query)
	assert.Len(t, ctx.EntryPoints, 2)
	assert.Equal(t, []string{"src/math.ts"}, ctx.RelatedFiles)
	assert.Equal(t, len(ctx.CodeBlocks), ctx.Stats.CodeBlockCount)
	assert.NotEmpty(t, ctx.Summary)
}

func TestBuildWithoutCodeBlocks(t *testing.T) {
	root, src := fixtureSource(t)

	doc, err := Build(root, src, "math", Options{IncludeCode: false, IncludeCodeSet: true, Format: FormatJSON})
	require.NoError(t, err)

	var ctx TaskContext
	require.NoError(t, json.Unmarshal([]byte(doc), &ctx))
	assert.Empty(t, ctx.CodeBlocks)
}

func TestBuildTruncatesOversizedCodeBlocks(t *testing.T) {
	root, src := fixtureSource(t)

	doc, err := Build(root, src, "math", Options{MaxCodeBlockSize: 10, Format: FormatJSON})
	require.NoError(t, err)

	var ctx TaskContext
	require.NoError(t, json.Unmarshal([]byte(doc), &ctx))
	require.NotEmpty(t, ctx.CodeBlocks)
	assert.Contains(t, ctx.CodeBlocks[0].Content, "truncated")
}

func TestBuildWithNoHitsStillRenders(t *testing.T) {
	root := t.TempDir()
	src := &fakeSource{nodes: map[string]*graph.Node{}}

	doc, err := Build(root, src, "nothing matches this", Options{})
	require.NoError(t, err)
	assert.Contains(t, doc, "nothing matches this")
}
