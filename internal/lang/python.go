package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:   graph.LangPython,
		Extensions: []string{"py", "pyi"},
		Classify:   classifyPython,
		CallNodeTypes: map[string]bool{
			"call": true,
		},
		ImportNodeTypes: map[string]bool{
			"import_statement":      true,
			"import_from_statement": true,
		},
	})
}

func classifyPython(nodeKind string) Classification {
	switch nodeKind {
	case "function_definition":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "class_definition":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "import_statement", "import_from_statement":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}
