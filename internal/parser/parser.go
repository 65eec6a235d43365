// Package parser adapts github.com/tree-sitter/go-tree-sitter and its
// per-language grammar bindings to coraline's language tags: given a
// lang.Language it produces a concrete syntax tree, or the sentinel
// ErrUnsupported for a tag with no wired grammar. Parsers are pooled per
// language since constructing one is comparatively expensive and the
// indexer parses many files of the same language back to back.
package parser

import (
	"errors"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	tree_sitter_swift "github.com/alex-pinkus/tree-sitter-swift/bindings/go"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// ErrUnsupported is returned by Parse when no grammar is wired for a
// language tag. Callers treat this as "skip this file, not an error".
var ErrUnsupported = errors.New("parser: unsupported language")

var (
	languagesOnce sync.Once
	languages     map[graph.Language]*tree_sitter.Language
	parserPools   map[graph.Language]*sync.Pool
)

func initLanguages() {
	languages = map[graph.Language]*tree_sitter.Language{
		graph.LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
		graph.LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		graph.LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		graph.LangTSX:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		graph.LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
		graph.LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
		graph.LangJava:       tree_sitter.NewLanguage(tree_sitter_java.Language()),
		graph.LangC:          tree_sitter.NewLanguage(tree_sitter_c.Language()),
		graph.LangCpp:        tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
		graph.LangCSharp:     tree_sitter.NewLanguage(tree_sitter_csharp.Language()),
		graph.LangPHP:        tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()),
		graph.LangRuby:       tree_sitter.NewLanguage(tree_sitter_ruby.Language()),
		graph.LangSwift:      tree_sitter.NewLanguage(tree_sitter_swift.Language()),
		graph.LangKotlin:     tree_sitter.NewLanguage(tree_sitter_kotlin.Language()),
		graph.LangScala:      tree_sitter.NewLanguage(tree_sitter_scala.Language()),
		graph.LangLua:        tree_sitter.NewLanguage(tree_sitter_lua.Language()),
		graph.LangBash:       tree_sitter.NewLanguage(tree_sitter_bash.Language()),
		graph.LangHTML:       tree_sitter.NewLanguage(tree_sitter_html.Language()),
		graph.LangCSS:        tree_sitter.NewLanguage(tree_sitter_css.Language()),
	}

	parserPools = make(map[graph.Language]*sync.Pool, len(languages))
	for l, tsLang := range languages {
		tsLang := tsLang
		parserPools[l] = &sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(tsLang); err != nil {
					return nil
				}
				return p
			},
		}
	}
}

// GetLanguage returns the tree-sitter Language handle wired for l, or nil
// if unsupported.
func GetLanguage(l graph.Language) *tree_sitter.Language {
	languagesOnce.Do(initLanguages)
	return languages[l]
}

// Parse produces a concrete syntax tree for source under language l.
// Returns ErrUnsupported for a tag with no wired grammar. A grammar that
// fails to produce a tree is also reported as ErrUnsupported-shaped
// behavior at the caller: the indexer treats any error here as skip, not
// abort.
func Parse(l graph.Language, source []byte) (*tree_sitter.Tree, error) {
	languagesOnce.Do(initLanguages)

	pool, ok := parserPools[l]
	if !ok {
		return nil, ErrUnsupported
	}

	v := pool.Get()
	p, ok := v.(*tree_sitter.Parser)
	if !ok || p == nil {
		return nil, ErrUnsupported
	}
	defer pool.Put(p)

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: %s: grammar produced no tree", l)
	}
	return tree, nil
}

// WalkFunc is invoked once per visited node. Returning false skips the
// node's children (but sibling traversal continues).
type WalkFunc func(node *tree_sitter.Node) bool

// Walk performs a depth-first, pre-order traversal of node, invoking fn at
// each step.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText extracts a node's source text from the original byte slice.
func NodeText(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if end > uint(len(source)) || start > end {
		return ""
	}
	return string(source[start:end])
}
