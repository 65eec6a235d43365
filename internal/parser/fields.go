package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/greysquirr3l/coraline/internal/lang"
)

// NodeName recovers a classified node's display name by trying, in order,
// the name/identifier/property/tag_name field accessors. The
// first field that resolves to a child node wins; an unnamed node (e.g. an
// anonymous function expression) returns "".
func NodeName(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	for _, field := range lang.NameFieldCandidates {
		if child := node.ChildByFieldName(field); child != nil {
			return NodeText(child, source)
		}
	}
	return ""
}
