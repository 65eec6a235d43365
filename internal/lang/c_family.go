package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:      graph.LangC,
		Extensions:    []string{"c", "h"},
		Classify:      classifyCFamily,
		CallNodeTypes: map[string]bool{"call_expression": true},
		ImportNodeTypes: map[string]bool{
			"preproc_include": true,
		},
	})
	Register(&LanguageSpec{
		Language:      graph.LangCpp,
		Extensions:    []string{"cpp", "cc", "cxx", "hpp", "hh"},
		Classify:      classifyCFamily,
		CallNodeTypes: map[string]bool{"call_expression": true},
		ImportNodeTypes: map[string]bool{
			"preproc_include": true,
		},
	})
	Register(&LanguageSpec{
		Language:   graph.LangCSharp,
		Extensions: []string{"cs"},
		Classify:   classifyCSharp,
		CallNodeTypes: map[string]bool{
			"invocation_expression": true,
			"object_creation_expression": true,
		},
		ImportNodeTypes: map[string]bool{"using_directive": true},
	})
}

// classifyCFamily covers both C and C++: function_definition->Function,
// struct_specifier/class_specifier->Struct/Class container,
// preproc_include->Import. C++ adds class_specifier; plain C never produces
// that node kind so the switch is safely shared.
func classifyCFamily(nodeKind string) Classification {
	switch nodeKind {
	case "function_definition":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "struct_specifier":
		return Classification{Kind: graph.KindStruct, IsContainer: true, Recognized: true}
	case "class_specifier":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "preproc_include":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}

func classifyCSharp(nodeKind string) Classification {
	switch nodeKind {
	case "method_declaration":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "class_declaration":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "interface_declaration":
		return Classification{Kind: graph.KindInterface, IsContainer: true, Recognized: true}
	case "struct_declaration":
		return Classification{Kind: graph.KindStruct, IsContainer: true, Recognized: true}
	case "using_directive":
		return Classification{Kind: graph.KindImport, Recognized: true}
	default:
		return Classification{}
	}
}
