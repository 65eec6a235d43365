package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:   graph.LangPHP,
		Extensions: []string{"php"},
		Classify:   classifyPHP,
		CallNodeTypes: map[string]bool{
			"function_call_expression": true,
			"member_call_expression":   true,
		},
		ImportNodeTypes: map[string]bool{"namespace_use_declaration": true},
	})
	Register(&LanguageSpec{
		Language:      graph.LangRuby,
		Extensions:    []string{"rb"},
		Classify:      classifyRuby,
		CallNodeTypes: map[string]bool{"call": true, "method_call": true},
	})
}

func classifyPHP(nodeKind string) Classification {
	switch nodeKind {
	case "function_definition":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "method_declaration":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "class_declaration":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "interface_declaration":
		return Classification{Kind: graph.KindInterface, IsContainer: true, Recognized: true}
	case "namespace_use_declaration":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}

func classifyRuby(nodeKind string) Classification {
	switch nodeKind {
	case "method":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "class":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "module":
		return Classification{Kind: graph.KindModule, IsContainer: true, Recognized: true}
	default:
		return Classification{}
	}
}
