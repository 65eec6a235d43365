// Package extractor implements the two-pass tree walk over a file's
// concrete syntax tree: pass 1 (collect) recognizes kinded constructs and emits
// symbol nodes plus containment/import/export edges while building an
// in-file symbol index; pass 2 (calls) walks the same tree again, tracking
// the enclosing callable scope, and either binds a call site directly or
// defers it as an unresolved reference. Neither pass writes to the store;
// both append to value-typed batches the indexer driver commits in one
// transaction per file.
package extractor

import (
	"path"

	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/lang"
	"github.com/greysquirr3l/coraline/internal/parser"
)

// Result is one file's extraction output: symbol nodes (including the
// File node itself), edges, and deferred call references.
type Result struct {
	Nodes      []graph.Node
	Edges      []graph.Edge
	Unresolved []graph.UnresolvedReference
}

// ExtractFile parses source under language and runs both extraction
// passes, returning the File node plus everything the classifier
// recognized underneath it. A language with no wired grammar or a grammar
// that fails to produce a tree yields a Result containing only the File
// node — that is "skip", not an error, so ExtractFile never
// returns a parse error itself; the caller decided whether to call it
// after consulting the parser adapter.
func ExtractFile(projectRoot, filePath string, source []byte, language graph.Language, nowMs int64) Result {
	fileNode := buildFileNode(filePath, language, nowMs)
	result := Result{Nodes: []graph.Node{fileNode}}

	tree, err := parser.Parse(language, source)
	if err != nil {
		return result
	}
	defer tree.Close()

	spec := lang.ForLanguage(language)
	if spec == nil {
		return result
	}

	st := &collectState{
		source:      source,
		projectRoot: projectRoot,
		filePath:    filePath,
		language:    language,
		spec:        spec,
		nowMs:       nowMs,
		idx:         newSymbolIndex(),
	}

	var stack []string
	walkCollect(tree.RootNode(), st, &stack, fileNode.ID, &result.Nodes, &result.Edges)

	var scopeStack []string
	walkCalls(tree.RootNode(), st, &scopeStack, &result.Edges, &result.Unresolved)

	return result
}

func buildFileNode(filePath string, language graph.Language, nowMs int64) graph.Node {
	name := path.Base(filePath)
	id := graph.NodeID(filePath, graph.KindFile, filePath, 1)
	return graph.Node{
		ID:            id,
		Kind:          graph.KindFile,
		Name:          name,
		QualifiedName: filePath,
		FilePath:      filePath,
		Language:      language,
		StartLine:     1,
		EndLine:       1,
		UpdatedAt:     nowMs,
	}
}
