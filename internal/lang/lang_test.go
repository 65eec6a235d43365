package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greysquirr3l/coraline/internal/graph"
)

func TestForExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want graph.Language
	}{
		{"ts", graph.LangTypeScript},
		{".ts", graph.LangTypeScript},
		{"TSX", graph.LangTSX},
		{"rs", graph.LangRust},
		{"go", graph.LangGo},
		{"py", graph.LangPython},
		{"unknownext", graph.LangUnknown},
	}
	for _, c := range cases {
		t.Run(c.ext, func(t *testing.T) {
			assert.Equal(t, c.want, LanguageForExtension(c.ext))
		})
	}
}

func TestRustClassifier(t *testing.T) {
	spec := ForLanguage(graph.LangRust)
	require.NotNil(t, spec)

	fn := spec.Classify("function_item")
	assert.True(t, fn.Recognized)
	assert.Equal(t, graph.KindFunction, fn.Kind)
	assert.False(t, fn.IsContainer)

	mod := spec.Classify("mod_item")
	assert.True(t, mod.Recognized)
	assert.Equal(t, graph.KindModule, mod.Kind)
	assert.True(t, mod.IsContainer)

	unknown := spec.Classify("nonsense_node")
	assert.False(t, unknown.Recognized)
}

func TestTypeScriptFamilyClassifier(t *testing.T) {
	for _, l := range []graph.Language{graph.LangTypeScript, graph.LangTSX, graph.LangJavaScript} {
		spec := ForLanguage(l)
		require.NotNil(t, spec, "language %s should be registered", l)

		cls := spec.Classify("class_declaration")
		assert.True(t, cls.Recognized)
		assert.Equal(t, graph.KindClass, cls.Kind)
		assert.True(t, cls.IsContainer)

		method := spec.Classify("method_definition")
		assert.Equal(t, graph.KindMethod, method.Kind)
	}
}

func TestFileOnlyLanguagesRegisterButDoNotClassify(t *testing.T) {
	spec := ForLanguage(graph.LangSwift)
	require.NotNil(t, spec)
	result := spec.Classify("class_declaration")
	assert.False(t, result.Recognized)
}
