package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:   graph.LangJava,
		Extensions: []string{"java"},
		Classify:   classifyJava,
		CallNodeTypes: map[string]bool{
			"method_invocation": true,
			"object_creation_expression": true,
		},
		ImportNodeTypes: map[string]bool{"import_declaration": true},
	})
}

func classifyJava(nodeKind string) Classification {
	switch nodeKind {
	case "method_declaration":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "class_declaration":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "interface_declaration":
		return Classification{Kind: graph.KindInterface, IsContainer: true, Recognized: true}
	case "enum_declaration":
		return Classification{Kind: graph.KindEnum, IsContainer: true, Recognized: true}
	case "import_declaration":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}
