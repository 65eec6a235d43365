package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Write("test_memory", "This is test content"))

	content, err := m.Read("test_memory")
	require.NoError(t, err)
	assert.Equal(t, "This is test content", content)
}

func TestWriteAndReadHandlesMdExtension(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Write("test.md", "content"))

	content, err := m.Read("test")
	require.NoError(t, err)
	assert.Equal(t, "content", content)

	content, err = m.Read("test.md")
	require.NoError(t, err)
	assert.Equal(t, "content", content)
}

func TestList(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Write("memory1", "content1"))
	require.NoError(t, m.Write("memory2", "content2"))
	require.NoError(t, m.Write("memory3", "content3"))

	names, err := m.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"memory1", "memory2", "memory3"}, names)
}

func TestDelete(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Write("to_delete", "content"))
	assert.True(t, m.Exists("to_delete"))

	require.NoError(t, m.Delete("to_delete"))
	assert.False(t, m.Exists("to_delete"))
}

func TestDeleteMissingIsError(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	err = m.Delete("nonexistent")
	assert.Error(t, err)
}

func TestReadMissingReturnsPlaceholder(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	content, err := m.Read("nonexistent")
	require.NoError(t, err)
	assert.Contains(t, content, "not found")
}

func TestSeedWritesFourTemplates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Seed(root, "test_project"))

	m, err := NewManager(root)
	require.NoError(t, err)

	names, err := m.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"project_overview", "style_conventions", "suggested_commands", "completion_checklist",
	}, names)

	overview, err := m.Read("project_overview")
	require.NoError(t, err)
	assert.Contains(t, overview, "test_project")
}
