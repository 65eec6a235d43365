package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectRootDefaultsToCwd(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	root, err := resolveProjectRoot("", nil)
	require.NoError(t, err)
	assert.Equal(t, cwd, root)
}

func TestResolveProjectRootPrefersPathFlagOverPositional(t *testing.T) {
	tmp := t.TempDir()
	root, err := resolveProjectRoot(tmp, []string{"/somewhere/else"})
	require.NoError(t, err)
	assert.Equal(t, tmp, root)
}

func TestResolveProjectRootFallsBackToPositional(t *testing.T) {
	tmp := t.TempDir()
	root, err := resolveProjectRoot("", []string{tmp})
	require.NoError(t, err)
	assert.Equal(t, tmp, root)
}

func TestInitCreatesLayoutAndStatusReportsEmptyStore(t *testing.T) {
	tmp := t.TempDir()

	root := newRootCmd()
	root.SetArgs([]string{"init", "--path", tmp, "--no-hooks"})
	var out bytes.Buffer
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(tmp, ".coraline", "config.json"))
	assert.FileExists(t, filepath.Join(tmp, ".coraline", "memories", "project_overview.md"))

	root = newRootCmd()
	root.SetArgs([]string{"status", "--path", tmp})
	out.Reset()
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "not yet indexed")
}

func TestHooksStatusOnNonGitDirectory(t *testing.T) {
	tmp := t.TempDir()

	root := newRootCmd()
	root.SetArgs([]string{"hooks", "status", "--path", tmp})
	var out bytes.Buffer
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "not a git repository")
}
