package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:   graph.LangRust,
		Extensions: []string{"rs"},
		Classify:   classifyRust,
		CallNodeTypes: map[string]bool{
			"call_expression":   true,
			"macro_invocation":  true,
		},
		ImportNodeTypes: map[string]bool{"use_declaration": true},
		ExportNodeTypes: map[string]bool{"use_item": true},
		ModuleNodeTypes: map[string]bool{"mod_item": true},
	})
}

func classifyRust(nodeKind string) Classification {
	switch nodeKind {
	case "function_item":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "struct_item":
		return Classification{Kind: graph.KindStruct, IsContainer: true, Recognized: true}
	case "enum_item":
		return Classification{Kind: graph.KindEnum, IsContainer: true, Recognized: true}
	case "trait_item":
		return Classification{Kind: graph.KindTrait, IsContainer: true, Recognized: true}
	case "mod_item":
		return Classification{Kind: graph.KindModule, IsContainer: true, Recognized: true}
	case "use_declaration":
		return Classification{Kind: graph.KindImport, Recognized: true}
	case "use_item":
		return Classification{Kind: graph.KindExport, Recognized: true}
	default:
		return Classification{}
	}
}
