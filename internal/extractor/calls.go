package extractor

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/parser"
)

// walkCalls is pass 2: a second walk over the same tree, maintaining an
// explicit scope stack of callable ids rather than relying on the call
// stack. It pushes/pops on exactly the same (kind, start, name) key pass 1
// populated symbolIndex.byKey with, so both passes agree on which node is
// the "current" enclosing callable. At each call-expression node it emits
// a direct Calls edge when the in-file name is unambiguous, or an
// unresolved reference (with or without candidates) otherwise.
func walkCalls(node *tree_sitter.Node, st *collectState, scopeStack *[]string, edges *[]graph.Edge, unresolved *[]graph.UnresolvedReference) {
	kindStr := node.Kind()
	class := st.spec.Classify(kindStr)

	pushedScope := false
	var name string
	if class.Recognized {
		name = nodeNameFor(node, st, kindStr)
	}
	if class.Recognized && class.Kind.IsCallable() && name != "" {
		key := nodeKey(class.Kind, node.StartPosition(), name)
		if id, ok := st.idx.byKey[key]; ok {
			*scopeStack = append(*scopeStack, id)
			pushedScope = true
		}
	}

	if st.spec.CallNodeTypes[kindStr] {
		if len(*scopeStack) > 0 {
			sourceID := (*scopeStack)[len(*scopeStack)-1]
			if callee := callName(node, st); callee != "" {
				start := node.StartPosition()
				emitCallReference(st, sourceID, callee, int64(start.Row)+1, int64(start.Column), edges, unresolved)
			}
		}
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		walkCalls(child, st, scopeStack, edges, unresolved)
	}

	if pushedScope {
		*scopeStack = (*scopeStack)[:len(*scopeStack)-1]
	}
}

// nodeNameFor recovers a classified node's name the same way pass 1 did,
// skipping the import/export/module special-case nodes (which never
// register a callable in symbolIndex and so are irrelevant to the scope
// stack pass 2 maintains).
func nodeNameFor(node *tree_sitter.Node, st *collectState, kindStr string) string {
	if st.spec.ImportNodeTypes[kindStr] || st.spec.ExportNodeTypes[kindStr] || st.spec.ModuleNodeTypes[kindStr] {
		return ""
	}
	return parser.NodeName(node, st.source)
}

func emitCallReference(st *collectState, sourceID, callee string, line, col int64, edges *[]graph.Edge, unresolved *[]graph.UnresolvedReference) {
	targets := st.idx.byName[callee]
	switch len(targets) {
	case 0:
		*unresolved = append(*unresolved, graph.UnresolvedReference{
			FromNodeID: sourceID, ReferenceName: callee, ReferenceKind: graph.EdgeCalls,
			Line: line, Column: col,
		})
	case 1:
		*edges = append(*edges, graph.Edge{Source: sourceID, Target: targets[0], Kind: graph.EdgeCalls, Line: line, Column: col})
	default:
		*unresolved = append(*unresolved, graph.UnresolvedReference{
			FromNodeID: sourceID, ReferenceName: callee, ReferenceKind: graph.EdgeCalls,
			Line: line, Column: col, Candidates: append([]string(nil), targets...),
		})
	}
}

// callName extracts a call expression's short callee name: the callee
// sub-expression's text, with the last `::`- or `.`-separated segment
// kept.
func callName(node *tree_sitter.Node, st *collectState) string {
	callee := node.ChildByFieldName("function")
	if callee == nil {
		// Rust macro_invocation names its callee under the macro field.
		callee = node.ChildByFieldName("macro")
	}
	if callee == nil {
		return ""
	}

	text := strings.TrimSpace(parser.NodeText(callee, st.source))
	if text == "" {
		return ""
	}

	name := text
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
