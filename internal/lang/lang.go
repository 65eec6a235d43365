// Package lang is the single extension point for teaching the extractor a
// new language: a LanguageSpec maps file extensions to a language tag and
// maps concrete-syntax-tree node-kind strings to coraline's closed symbol
// and call-site vocabulary. Nothing in internal/extractor changes when a
// language is added here.
package lang

import (
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// Classification is the result of asking a LanguageSpec what a grammar node
// kind string means: the semantic kind (if any), and whether the node opens
// a new lexical scope that subsequent children should be qualified under.
type Classification struct {
	Kind        graph.NodeKind
	IsContainer bool
	Recognized  bool
}

// NameFieldCandidates lists the grammar field names tried, in order, to
// recover a classified node's display name.
var NameFieldCandidates = []string{"name", "identifier", "property", "tag_name"}

// LanguageSpec registers one language's extensions and its classifier.
type LanguageSpec struct {
	Language   graph.Language
	Extensions []string

	// Classify maps a grammar node-kind string to a Classification.
	Classify func(nodeKind string) Classification

	// CallNodeTypes are grammar node-kind strings that denote a call
	// expression (or, for Rust, a macro invocation treated the same way).
	CallNodeTypes map[string]bool

	// ImportNodeTypes are grammar node-kind strings for import statements;
	// ExportNodeTypes for export/re-export statements. The extractor walks
	// their subtrees with language-specific helpers rather than the
	// generic classifier, since one statement may bind several names.
	ImportNodeTypes map[string]bool
	ExportNodeTypes map[string]bool

	// ModuleNodeTypes are grammar node-kind strings for a module
	// declaration whose target file the extractor should attempt to
	// resolve (only meaningful for Rust's mod_item today).
	ModuleNodeTypes map[string]bool
}

var (
	registry      = map[graph.Language]*LanguageSpec{}
	byExtension   = map[string]*LanguageSpec{}
)

// Register adds a LanguageSpec to the global registry. Called from each
// language file's init().
func Register(spec *LanguageSpec) {
	registry[spec.Language] = spec
	for _, ext := range spec.Extensions {
		byExtension[strings.ToLower(ext)] = spec
	}
}

// ForExtension returns the LanguageSpec registered for a file extension
// (with or without the leading dot), or nil if none is registered.
func ForExtension(ext string) *LanguageSpec {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return byExtension[ext]
}

// ForLanguage returns the LanguageSpec registered for a language tag, or
// nil if unregistered.
func ForLanguage(l graph.Language) *LanguageSpec {
	return registry[l]
}

// LanguageForExtension resolves a file extension straight to a language
// tag, returning graph.LangUnknown if no spec is registered.
func LanguageForExtension(ext string) graph.Language {
	if spec := ForExtension(ext); spec != nil {
		return spec.Language
	}
	return graph.LangUnknown
}

// AllExtensions returns every registered extension across all languages,
// used to seed the scanner's default include-glob set.
func AllExtensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	return exts
}

// fileOnlySpec builds a minimal LanguageSpec for languages whose grammar is
// wired for parsing but which have no dedicated classifier yet: they
// collect at most File nodes until language-specific extractors are
// supplied — every node below the File root is simply unrecognized.
func fileOnlySpec(language graph.Language, extensions ...string) *LanguageSpec {
	return &LanguageSpec{
		Language:   language,
		Extensions: extensions,
		Classify: func(string) Classification {
			return Classification{}
		},
	}
}
