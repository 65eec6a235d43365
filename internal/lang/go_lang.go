package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:        graph.LangGo,
		Extensions:      []string{"go"},
		Classify:        classifyGo,
		CallNodeTypes:   map[string]bool{"call_expression": true},
		ImportNodeTypes: map[string]bool{"import_declaration": true},
	})
}

// classifyGo: function_declaration->Function, method_declaration->Method,
// type_spec->Struct (a container; tree-sitter-go does not distinguish
// struct/interface/alias type_specs by node kind alone, so this
// implementation treats all of them as a Struct container rather than
// attempting field-level inspection the classifier's (kind string) -> result
// shape does not support).
func classifyGo(nodeKind string) Classification {
	switch nodeKind {
	case "function_declaration":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "method_declaration":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "type_spec":
		return Classification{Kind: graph.KindStruct, IsContainer: true, Recognized: true}
	case "import_declaration":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}
