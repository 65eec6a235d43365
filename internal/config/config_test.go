package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutExistingFileReturnsDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.NotEmpty(t, cfg.Include)
	assert.NotEmpty(t, cfg.Exclude)
	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, cfg.RootDir)
}

func TestSaveLoadRoundTripNormalizesRootDir(t *testing.T) {
	root := t.TempDir()
	cfg := Default(root)
	cfg.Languages = nil
	require.NoError(t, Save(root, cfg))

	reloaded, err := Load(root)
	require.NoError(t, err)

	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, reloaded.RootDir)
	assert.Equal(t, cfg.Include, reloaded.Include)
	assert.Equal(t, cfg.Exclude, reloaded.Exclude)
	assert.Equal(t, cfg.MaxFileSize, reloaded.MaxFileSize)
}

func TestAddIncludePatternsDedupes(t *testing.T) {
	cfg := Default(t.TempDir())
	before := len(cfg.Include)
	AddIncludePatterns(&cfg, []string{"**/*.ts", "**/*.vue"})
	assert.Equal(t, before+1, len(cfg.Include))
}
