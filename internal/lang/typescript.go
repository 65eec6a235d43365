package lang

import "github.com/greysquirr3l/coraline/internal/graph"

func init() {
	Register(&LanguageSpec{
		Language:        graph.LangTypeScript,
		Extensions:      []string{"ts"},
		Classify:        classifyTSFamily,
		CallNodeTypes:   tsCallNodeTypes,
		ImportNodeTypes: tsImportNodeTypes,
		ExportNodeTypes: tsExportNodeTypes,
	})
	Register(&LanguageSpec{
		Language:        graph.LangTSX,
		Extensions:      []string{"tsx", "jsx"},
		Classify:        classifyTSFamily,
		CallNodeTypes:   tsCallNodeTypes,
		ImportNodeTypes: tsImportNodeTypes,
		ExportNodeTypes: tsExportNodeTypes,
	})
	Register(&LanguageSpec{
		Language:        graph.LangJavaScript,
		Extensions:      []string{"js", "mjs", "cjs"},
		Classify:        classifyTSFamily,
		CallNodeTypes:   tsCallNodeTypes,
		ImportNodeTypes: tsImportNodeTypes,
		ExportNodeTypes: tsExportNodeTypes,
	})
}

var tsCallNodeTypes = map[string]bool{"call_expression": true}

// The TS/JS grammars name the statement import_statement; the classifier
// also accepts import_declaration for grammar revisions that used the
// older spelling.
var tsImportNodeTypes = map[string]bool{
	"import_statement":   true,
	"import_declaration": true,
}

var tsExportNodeTypes = map[string]bool{
	"export_statement":    true,
	"export_declaration":  true,
}

// classifyTSFamily implements the TS/JS/TSX/JSX classification table:
// function_declaration->Function; class_declaration->Class (container);
// method_definition->Method; interface_declaration->Interface (container);
// type_alias_declaration->TypeAlias; import_declaration->Import;
// export_statement/export_declaration->Export.
func classifyTSFamily(nodeKind string) Classification {
	switch nodeKind {
	case "function_declaration":
		return Classification{Kind: graph.KindFunction, Recognized: true}
	case "class_declaration":
		return Classification{Kind: graph.KindClass, IsContainer: true, Recognized: true}
	case "method_definition":
		return Classification{Kind: graph.KindMethod, Recognized: true}
	case "interface_declaration":
		return Classification{Kind: graph.KindInterface, IsContainer: true, Recognized: true}
	case "type_alias_declaration":
		return Classification{Kind: graph.KindTypeAlias, Recognized: true}
	case "import_statement", "import_declaration":
		return Classification{Kind: graph.KindImport, Recognized: true}
	case "export_statement", "export_declaration":
		return Classification{Kind: graph.KindExport, Recognized: true}
	default:
		return Classification{}
	}
}
