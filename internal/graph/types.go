// Package graph holds the core data model shared by every coraline
// component: symbol nodes, edges, file records, unresolved references, and
// the subgraph envelope the graph assembler and context builder produce.
package graph

// NodeKind is the closed set of symbol kinds the extractor can emit.
type NodeKind string

const (
	KindFile       NodeKind = "file"
	KindModule     NodeKind = "module"
	KindClass      NodeKind = "class"
	KindStruct     NodeKind = "struct"
	KindInterface  NodeKind = "interface"
	KindTrait      NodeKind = "trait"
	KindProtocol   NodeKind = "protocol"
	KindFunction   NodeKind = "function"
	KindMethod     NodeKind = "method"
	KindProperty   NodeKind = "property"
	KindField      NodeKind = "field"
	KindVariable   NodeKind = "variable"
	KindConstant   NodeKind = "constant"
	KindEnum       NodeKind = "enum"
	KindEnumMember NodeKind = "enum_member"
	KindTypeAlias  NodeKind = "type_alias"
	KindNamespace  NodeKind = "namespace"
	KindParameter  NodeKind = "parameter"
	KindImport     NodeKind = "import"
	KindExport     NodeKind = "export"
	KindRoute      NodeKind = "route"
	KindComponent  NodeKind = "component"
)

// IsCallable reports whether a node of this kind may appear on either side
// of a Calls edge. Only Function and Method are callable.
func (k NodeKind) IsCallable() bool {
	return k == KindFunction || k == KindMethod
}

// EdgeKind is the closed set of relationship kinds between symbol nodes.
// Only Contains, Calls, Imports, and Exports are ever emitted by this
// implementation's extractor; the remainder are reserved for a future,
// deeper semantic pass (see Non-goals) and are declared here so the data
// model and store schema do not need to change if that pass is added.
type EdgeKind string

const (
	EdgeContains     EdgeKind = "contains"
	EdgeCalls        EdgeKind = "calls"
	EdgeImports      EdgeKind = "imports"
	EdgeExports      EdgeKind = "exports"
	EdgeExtends      EdgeKind = "extends"
	EdgeImplements   EdgeKind = "implements"
	EdgeReferences   EdgeKind = "references"
	EdgeTypeOf       EdgeKind = "type_of"
	EdgeReturns      EdgeKind = "returns"
	EdgeInstantiates EdgeKind = "instantiates"
	EdgeOverrides    EdgeKind = "overrides"
	EdgeDecorates    EdgeKind = "decorates"
)

// Language is a source-language tag. Unknown is used for files the scanner
// includes but the parser adapter has no grammar for.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCpp        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangRuby       Language = "ruby"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangLua        Language = "lua"
	LangBash       Language = "bash"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangUnknown    Language = "unknown"
)

// Visibility is an optional access-modifier tag recovered from the grammar
// where the language exposes one syntactically (e.g. Rust's pub, Go's
// exported-identifier casing is folded into IsExported instead).
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
)

// Node is a single symbol extracted from a source file.
type Node struct {
	ID             string
	Kind           NodeKind
	Name           string
	QualifiedName  string
	FilePath       string
	Language       Language
	StartLine      int64
	EndLine        int64
	StartColumn    int64
	EndColumn      int64
	Docstring      string
	Signature      string
	Visibility     Visibility
	IsExported     bool
	IsAsync        bool
	IsStatic       bool
	IsAbstract     bool
	Decorators     []string
	TypeParameters []string
	UpdatedAt      int64
}

// Edge is a directed, labeled arc between two node ids.
type Edge struct {
	Source   string
	Target   string
	Kind     EdgeKind
	Metadata map[string]any
	Line     int64
	Column   int64
}

// FileRecord tracks one scanned file's last-indexed state.
type FileRecord struct {
	Path       string
	ContentHash string
	Language   Language
	Size       int64
	ModifiedAt int64
	IndexedAt  int64
	NodeCount  int64
	Errors     []ExtractionError
}

// ExtractionErrorSeverity distinguishes fatal per-file failures from
// warnings that still let the file contribute whatever was parsed.
type ExtractionErrorSeverity string

const (
	SeverityError   ExtractionErrorSeverity = "error"
	SeverityWarning ExtractionErrorSeverity = "warning"
)

// ExtractionError is a single per-file diagnostic collected during indexing.
type ExtractionError struct {
	Message  string
	Line     int64
	Column   int64
	Severity ExtractionErrorSeverity
	Code     string
}

// UnresolvedReference is a deferred call-site binding the extractor could
// not settle during pass 2; the resolver re-ranks these against the global
// symbol table.
type UnresolvedReference struct {
	ID            int64
	FromNodeID    string
	ReferenceName string
	ReferenceKind EdgeKind
	Line          int64
	Column        int64
	Candidates    []string
}

// Subgraph is the output of the graph assembler and the backbone of context
// builder results: a node map, an edge list, and the root ids the BFS
// started from.
type Subgraph struct {
	Nodes map[string]*Node
	Edges []Edge
	Roots []string
}

// TraversalDirection controls which edges a BFS step expands.
type TraversalDirection string

const (
	DirectionOutgoing TraversalDirection = "outgoing"
	DirectionIncoming TraversalDirection = "incoming"
	DirectionBoth     TraversalDirection = "both"
)

// TraversalOptions configures the graph assembler's bounded BFS.
type TraversalOptions struct {
	MaxDepth     int
	EdgeKinds    []EdgeKind
	NodeKinds    []NodeKind
	Direction    TraversalDirection
	Limit        int
	IncludeStart bool
}

// DefaultTraversalOptions mirrors the assembler's documented defaults:
// depth 1, no kind filters, both directions, a 200-edge budget, start node
// included.
func DefaultTraversalOptions() TraversalOptions {
	return TraversalOptions{
		MaxDepth:     1,
		Direction:    DirectionBoth,
		Limit:        200,
		IncludeStart: true,
	}
}

// SearchResult pairs a node with its FTS rank and optional highlight text.
type SearchResult struct {
	Node       Node
	Score      float64
	Highlights []string
}
