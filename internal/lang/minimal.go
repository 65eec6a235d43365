package lang

import "github.com/greysquirr3l/coraline/internal/graph"

// Languages whose grammar is wired for parsing (so the parser adapter can
// produce a tree, and a File node is still extracted) but which have no
// dedicated classifier: they collect at most File nodes until
// language-specific extractors are supplied. Promoting one to a full
// classifier later only means adding a Classify function.
func init() {
	Register(fileOnlySpec(graph.LangSwift, "swift"))
	Register(fileOnlySpec(graph.LangKotlin, "kt", "kts"))
	Register(fileOnlySpec(graph.LangScala, "scala"))
	Register(fileOnlySpec(graph.LangLua, "lua"))
	Register(fileOnlySpec(graph.LangBash, "sh", "bash"))
	Register(fileOnlySpec(graph.LangHTML, "html", "htm"))
	Register(fileOnlySpec(graph.LangCSS, "css"))
}
