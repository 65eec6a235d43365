package extractor

import (
	"fmt"
	"os"
	"path"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/lang"
	"github.com/greysquirr3l/coraline/internal/parser"
)

// collectState threads the values walkCollect needs through every
// recursive call without ballooning its parameter list further.
type collectState struct {
	source      []byte
	projectRoot string
	filePath    string
	language    graph.Language
	spec        *lang.LanguageSpec
	nowMs       int64
	idx         *symbolIndex
}

// walkCollect is pass 1: it emits a Node (and a Contains edge to its
// lexical parent) for every grammar node the language's classifier
// recognizes, threading a scope-name stack so nested declarations get a
// qualified name, and populates the symbol index callable declarations
// register themselves under so pass 2 can resolve call sites against it.
func walkCollect(node *tree_sitter.Node, st *collectState, stack *[]string, parentID string, nodes *[]graph.Node, edges *[]graph.Edge) {
	kindStr := node.Kind()
	class := st.spec.Classify(kindStr)

	if st.spec.ImportNodeTypes[kindStr] && class.Kind == graph.KindImport {
		if parentID != "" {
			addImportNodes(node, st, parentID, nodes, edges)
			// A Rust `pub use` is simultaneously an import and a
			// re-export; emit Export nodes for the re-exported path too.
			if st.language == graph.LangRust && hasVisibilityModifier(node) {
				addExportNodes(node, st, parentID, nodes, edges)
			}
		}
		return
	}

	if st.spec.ModuleNodeTypes[kindStr] && class.Kind == graph.KindModule {
		if parentID != "" {
			modID, modName := addModuleNode(node, st, *stack, parentID, nodes, edges)
			// An inline `mod name { ... }` keeps its declarations contained
			// under the Module node; a `mod name;` declaration has no body.
			if modID != "" {
				if body := node.ChildByFieldName("body"); body != nil {
					*stack = append(*stack, modName)
					walkCollect(body, st, stack, modID, nodes, edges)
					*stack = (*stack)[:len(*stack)-1]
				}
			}
		}
		return
	}

	handledExport := false
	if st.spec.ExportNodeTypes[kindStr] && class.Kind == graph.KindExport {
		if parentID != "" {
			addExportNodes(node, st, parentID, nodes, edges)
			handledExport = true
		}
	}

	var name string
	if !handledExport && class.Recognized {
		name = parser.NodeName(node, st.source)
	}

	nextParentID := parentID

	if class.Recognized && name != "" {
		qualifiedName := qualifiedNameFor(st.filePath, *stack, name)
		start := node.StartPosition()
		end := node.EndPosition()
		id := graph.NodeID(st.filePath, class.Kind, qualifiedName, int64(start.Row)+1)

		*nodes = append(*nodes, graph.Node{
			ID:            id,
			Kind:          class.Kind,
			Name:          name,
			QualifiedName: qualifiedName,
			FilePath:      st.filePath,
			Language:      st.language,
			StartLine:     int64(start.Row) + 1,
			EndLine:       int64(end.Row) + 1,
			StartColumn:   int64(start.Column),
			EndColumn:     int64(end.Column),
			UpdatedAt:     st.nowMs,
		})

		if class.Kind.IsCallable() {
			key := nodeKey(class.Kind, start, name)
			st.idx.byKey[key] = id
			st.idx.byName[name] = append(st.idx.byName[name], id)
			st.idx.callableIDs[id] = true
		}

		if parentID != "" {
			*edges = append(*edges, graph.Edge{
				Source: parentID, Target: id, Kind: graph.EdgeContains,
				Line: int64(start.Row) + 1, Column: int64(start.Column),
			})
		}

		if class.IsContainer {
			*stack = append(*stack, name)
			nextParentID = id
		}
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		walkCollect(child, st, stack, nextParentID, nodes, edges)
	}

	if class.IsContainer && name != "" {
		*stack = (*stack)[:len(*stack)-1]
	}
}

func qualifiedNameFor(filePath string, stack []string, name string) string {
	if len(stack) == 0 {
		return filePath + "::" + name
	}
	joined := stack[0]
	for _, s := range stack[1:] {
		joined += "::" + s
	}
	return filePath + "::" + joined + "::" + name
}

func nodeKey(kind graph.NodeKind, start tree_sitter.Point, name string) string {
	return fmt.Sprintf("%s:%d:%d:%s", kind, start.Row, start.Column, name)
}

// importSymbol is one local binding introduced by an import statement,
// decomposed from the statement's clause sub-tree.
type importSymbol struct {
	localName  string
	modulePath string
	exportName string
}

// addImportNodes emits one Import node (plus its Contains and Imports
// edges) per local binding an import statement introduces. TS/JS import
// clauses may bind several names at once (default, namespace, named); Rust
// use_declarations bind exactly one, optionally aliased.
func addImportNodes(node *tree_sitter.Node, st *collectState, parentID string, nodes *[]graph.Node, edges *[]graph.Edge) {
	symbols := importSymbols(node, st)
	if len(symbols) == 0 {
		return
	}

	start := node.StartPosition()
	end := node.EndPosition()

	for _, sym := range symbols {
		qualifiedName := fmt.Sprintf("%s::import::%s::%s", st.filePath, sym.localName, sym.modulePath)
		id := graph.NodeID(st.filePath, graph.KindImport, qualifiedName, int64(start.Row)+1)
		signature := sym.modulePath
		if sym.exportName != "" {
			signature = sym.modulePath + "|export=" + sym.exportName
		}

		*nodes = append(*nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindImport,
			Name:          sym.localName,
			QualifiedName: qualifiedName,
			FilePath:      st.filePath,
			Language:      st.language,
			StartLine:     int64(start.Row) + 1,
			EndLine:       int64(end.Row) + 1,
			StartColumn:   int64(start.Column),
			EndColumn:     int64(end.Column),
			Signature:     signature,
			UpdatedAt:     st.nowMs,
		})

		*edges = append(*edges,
			graph.Edge{Source: parentID, Target: id, Kind: graph.EdgeContains, Line: int64(start.Row) + 1, Column: int64(start.Column)},
			graph.Edge{Source: parentID, Target: id, Kind: graph.EdgeImports, Line: int64(start.Row) + 1, Column: int64(start.Column)},
		)
	}
}

// importSymbols decomposes an import/use statement into its local
// bindings. TS/JS walks the import_clause sub-tree (default/namespace/named
// specifiers); Rust use_declarations resolve a single path with an
// optional alias.
func importSymbols(node *tree_sitter.Node, st *collectState) []importSymbol {
	switch st.language {
	case graph.LangTypeScript, graph.LangTSX, graph.LangJavaScript:
		modulePath := importModulePath(node, st)
		if modulePath == "" {
			return nil
		}
		var syms []importSymbol
		if clause := namedChildOfKind(node, "import_clause"); clause != nil {
			collectImportSymbols(clause, st.source, modulePath, &syms)
		}
		if len(syms) == 0 {
			// Side-effect import (`import "./setup"`): one binding named
			// after the module itself.
			syms = append(syms, importSymbol{localName: modulePath, modulePath: modulePath})
		}
		return syms
	case graph.LangRust:
		return rustUseSymbols(node, st.source)
	default:
		return nil
	}
}

func importModulePath(node *tree_sitter.Node, st *collectState) string {
	child := node.ChildByFieldName("source")
	if child == nil {
		return ""
	}
	raw := strings.TrimSpace(parser.NodeText(child, st.source))
	return strings.Trim(raw, `"'`)
}

// namedChildOfKind returns the first named child whose grammar kind
// matches, for grammar shapes that expose a clause as a named child
// without a field accessor (the TS/JS import_clause).
func namedChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		child := node.NamedChild(uint(i))
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// rustUseSymbols decomposes a use_declaration's `argument` clause: a plain
// or scoped path binds its tail segment; `use ... as alias` binds the
// alias and records the original tail as the export name; grouped lists
// and wildcards (`use foo::{a, b}`, `use foo::*`) collapse to a single
// Import named after the path tail.
func rustUseSymbols(node *tree_sitter.Node, source []byte) []importSymbol {
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return nil
	}

	if arg.Kind() == "use_as_clause" {
		pathNode := arg.ChildByFieldName("path")
		aliasNode := arg.ChildByFieldName("alias")
		if pathNode == nil {
			return nil
		}
		p := strings.TrimSpace(parser.NodeText(pathNode, source))
		if p == "" {
			return nil
		}
		original := rustPathTail(p)
		sym := importSymbol{localName: original, modulePath: p}
		if aliasNode != nil {
			if alias := parser.NodeText(aliasNode, source); alias != "" {
				sym.localName = alias
				sym.exportName = original
			}
		}
		return []importSymbol{sym}
	}

	p := strings.TrimSpace(parser.NodeText(arg, source))
	switch arg.Kind() {
	case "scoped_use_list", "use_list", "use_wildcard":
		if pathNode := arg.ChildByFieldName("path"); pathNode != nil {
			p = strings.TrimSpace(parser.NodeText(pathNode, source))
		}
	}
	if p == "" {
		return nil
	}
	return []importSymbol{{localName: rustPathTail(p), modulePath: p}}
}

func rustPathTail(p string) string {
	if i := strings.LastIndex(p, "::"); i >= 0 {
		return p[i+2:]
	}
	return p
}

func collectImportSymbols(node *tree_sitter.Node, source []byte, modulePath string, out *[]importSymbol) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			if text := parser.NodeText(child, source); text != "" {
				*out = append(*out, importSymbol{localName: text, modulePath: modulePath})
			}
		case "namespace_import":
			// `* as ns` — the binding is the identifier child; the grammar
			// exposes no field for it.
			if name := namedChildOfKind(child, "identifier"); name != nil {
				if text := parser.NodeText(name, source); text != "" {
					*out = append(*out, importSymbol{localName: text, modulePath: modulePath})
				}
			}
		case "named_imports":
			collectNamedImports(child, source, modulePath, out)
		case "import_specifier":
			collectImportSpecifier(child, source, modulePath, out)
		}
	}
}

func collectNamedImports(node *tree_sitter.Node, source []byte, modulePath string, out *[]importSymbol) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == "import_specifier" {
			collectImportSpecifier(child, source, modulePath, out)
		}
	}
}

func collectImportSpecifier(node *tree_sitter.Node, source []byte, modulePath string, out *[]importSymbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	exportName := parser.NodeText(nameNode, source)
	if exportName == "" {
		return
	}
	localName := exportName
	if aliasNode := node.ChildByFieldName("alias"); aliasNode != nil {
		if alias := parser.NodeText(aliasNode, source); alias != "" {
			localName = alias
		}
	}
	*out = append(*out, importSymbol{localName: localName, modulePath: modulePath, exportName: exportName})
}

// addModuleNode emits a Module node for a Rust mod_item, attempting to
// resolve its target file to `<dir>/<name>.rs` or `<dir>/<name>/mod.rs`
// relative to the project root. Other languages never reach
// this path since only Rust registers ModuleNodeTypes.
func addModuleNode(node *tree_sitter.Node, st *collectState, stack []string, parentID string, nodes *[]graph.Node, edges *[]graph.Edge) (string, string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return "", ""
	}
	name := parser.NodeText(nameNode, st.source)
	if name == "" {
		return "", ""
	}

	start := node.StartPosition()
	end := node.EndPosition()
	qualifiedName := qualifiedNameFor(st.filePath, stack, name)
	id := graph.NodeID(st.filePath, graph.KindModule, qualifiedName, int64(start.Row)+1)

	signature := ""
	if st.language == graph.LangRust {
		signature = rustModuleTarget(st.projectRoot, st.filePath, name)
	}

	*nodes = append(*nodes, graph.Node{
		ID:            id,
		Kind:          graph.KindModule,
		Name:          name,
		QualifiedName: qualifiedName,
		FilePath:      st.filePath,
		Language:      st.language,
		StartLine:     int64(start.Row) + 1,
		EndLine:       int64(end.Row) + 1,
		StartColumn:   int64(start.Column),
		EndColumn:     int64(end.Column),
		Signature:     signature,
		UpdatedAt:     st.nowMs,
	})

	*edges = append(*edges, graph.Edge{
		Source: parentID, Target: id, Kind: graph.EdgeContains,
		Line: int64(start.Row) + 1, Column: int64(start.Column),
	})
	return id, name
}

// rustModuleTarget resolves a `mod name;` declaration to the file it
// names, trying `<dir>/name.rs` then `<dir>/name/mod.rs`; returns "" if
// neither exists under projectRoot.
func rustModuleTarget(projectRoot, filePath, name string) string {
	dir := path.Dir(filePath)
	if dir == "." {
		dir = ""
	}
	candidateFile := path.Join(dir, name+".rs")
	candidateMod := path.Join(dir, name, "mod.rs")

	if fileExists(path.Join(projectRoot, candidateFile)) {
		return candidateFile
	}
	if fileExists(path.Join(projectRoot, candidateMod)) {
		return candidateMod
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// exportSymbol is one binding an export/re-export statement names.
type exportSymbol struct {
	name       string
	modulePath string
}

// addExportNodes emits one Export node (plus Contains/Exports edges) per
// binding an export statement names: TS/JS export_statement/declaration
// subtrees may export several declarations or re-export names from another
// module; Rust `pub use` re-exports name exactly one path.
func addExportNodes(node *tree_sitter.Node, st *collectState, parentID string, nodes *[]graph.Node, edges *[]graph.Edge) {
	symbols := exportSymbols(node, st)
	if len(symbols) == 0 {
		return
	}

	start := node.StartPosition()
	end := node.EndPosition()

	for _, sym := range symbols {
		qualifiedName := st.filePath + "::export::" + sym.name
		id := graph.NodeID(st.filePath, graph.KindExport, qualifiedName, int64(start.Row)+1)

		*nodes = append(*nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindExport,
			Name:          sym.name,
			QualifiedName: qualifiedName,
			FilePath:      st.filePath,
			Language:      st.language,
			StartLine:     int64(start.Row) + 1,
			EndLine:       int64(end.Row) + 1,
			StartColumn:   int64(start.Column),
			EndColumn:     int64(end.Column),
			Signature:     sym.modulePath,
			IsExported:    true,
			UpdatedAt:     st.nowMs,
		})

		*edges = append(*edges,
			graph.Edge{Source: parentID, Target: id, Kind: graph.EdgeContains, Line: int64(start.Row) + 1, Column: int64(start.Column)},
			graph.Edge{Source: parentID, Target: id, Kind: graph.EdgeExports, Line: int64(start.Row) + 1, Column: int64(start.Column)},
		)
	}
}

func exportSymbols(node *tree_sitter.Node, st *collectState) []exportSymbol {
	switch st.language {
	case graph.LangTypeScript, graph.LangTSX, graph.LangJavaScript:
		modulePath := exportModulePath(node, st.source)
		var names []string
		collectExportNames(node, st.source, &names)
		if len(names) == 0 {
			return nil
		}
		syms := make([]exportSymbol, 0, len(names))
		for _, n := range names {
			syms = append(syms, exportSymbol{name: n, modulePath: modulePath})
		}
		return syms
	case graph.LangRust:
		syms := rustUseSymbols(node, st.source)
		out := make([]exportSymbol, 0, len(syms))
		for _, s := range syms {
			out = append(out, exportSymbol{name: s.localName, modulePath: s.modulePath})
		}
		return out
	default:
		return nil
	}
}

func hasVisibilityModifier(node *tree_sitter.Node) bool {
	return namedChildOfKind(node, "visibility_modifier") != nil
}

func exportModulePath(node *tree_sitter.Node, source []byte) string {
	child := node.ChildByFieldName("source")
	if child == nil {
		return ""
	}
	raw := strings.TrimSpace(parser.NodeText(child, source))
	return strings.Trim(raw, `"'`)
}

// collectExportNames recurses through an export statement's subtree,
// recovering either re-exported specifier names or the name of whatever
// declaration the statement directly exports.
func collectExportNames(node *tree_sitter.Node, source []byte, names *[]string) {
	switch node.Kind() {
	case "export_specifier":
		name := node.ChildByFieldName("alias")
		if name == nil {
			name = node.ChildByFieldName("name")
		}
		if name != nil {
			if text := parser.NodeText(name, source); text != "" {
				*names = append(*names, text)
			}
		}
		return
	case "function_declaration", "class_declaration", "interface_declaration",
		"type_alias_declaration", "enum_declaration", "variable_declarator":
		if name := node.ChildByFieldName("name"); name != nil {
			if text := parser.NodeText(name, source); text != "" {
				*names = append(*names, text)
			}
		}
		return
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil {
			collectExportNames(child, source, names)
		}
	}
}
