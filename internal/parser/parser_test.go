package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

func TestParseGoSource(t *testing.T) {
	source := []byte("package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n")
	tree, err := Parse(graph.LangGo, source)
	require.NoError(t, err)
	require.NotNil(t, tree)
	defer tree.Close()

	var funcNames []string
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_declaration" {
			funcNames = append(funcNames, NodeName(n, source))
		}
		return true
	})
	assert.Contains(t, funcNames, "add")
}

func TestParseUnsupportedLanguage(t *testing.T) {
	_, err := Parse(graph.LangUnknown, []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestWalkSkipsChildrenWhenFnReturnsFalse(t *testing.T) {
	source := []byte("package main\n\nfunc add() {}\n")
	tree, err := Parse(graph.LangGo, source)
	require.NoError(t, err)
	defer tree.Close()

	visited := 0
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		visited++
		return n.Kind() != "function_declaration"
	})
	assert.Greater(t, visited, 0)
}
