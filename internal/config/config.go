// Package config loads and saves .coraline/config.json, the project-level
// configuration for include/exclude globs, language hints, and feature
// toggles. root_dir is written as "." and overwritten with the absolute
// project root on load, keeping the file portable across checkouts.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/greysquirr3l/coraline/internal/cgerr"
	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/scanner"
)

// FileName is the config file's name inside the .coraline directory.
const FileName = "config.json"

// CustomPattern lets a project register an extra name->kind classification
// rule outside the built-in language classifiers.
type CustomPattern struct {
	Name    string        `json:"name"`
	Pattern string        `json:"pattern"`
	Kind    graph.NodeKind `json:"kind"`
}

// FrameworkPatterns narrows a framework hint to specific symbol shapes.
type FrameworkPatterns struct {
	Components []string `json:"components,omitempty"`
	Routes     []string `json:"routes,omitempty"`
	Models     []string `json:"models,omitempty"`
}

// FrameworkHint is a user-declared framework the project uses, reserved for
// a future enrichment pass; the core extractor does not consume it today.
type FrameworkHint struct {
	Name     string             `json:"name"`
	Version  string             `json:"version,omitempty"`
	Patterns *FrameworkPatterns `json:"patterns,omitempty"`
}

// Config is the on-disk shape of .coraline/config.json.
type Config struct {
	Version           int              `json:"version"`
	RootDir           string           `json:"root_dir"`
	Include           []string         `json:"include"`
	Exclude           []string         `json:"exclude"`
	Languages         []graph.Language `json:"languages"`
	Frameworks        []FrameworkHint  `json:"frameworks"`
	MaxFileSize       int64            `json:"max_file_size"`
	ExtractDocstrings bool             `json:"extract_docstrings"`
	TrackCallSites    bool             `json:"track_call_sites"`
	EnableEmbeddings  bool             `json:"enable_embeddings"`
	CustomPatterns    []CustomPattern  `json:"custom_patterns,omitempty"`
}

// Path returns the config file's absolute path under projectRoot.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, ".coraline", FileName)
}

// Default builds the configuration a freshly initialized project gets:
// default glob sets, 1MiB max file size, docstrings/call-sites on,
// embeddings flagged on as a placeholder (the vectors table and
// similarity search are a future path, not implemented here).
func Default(projectRoot string) Config {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	return Config{
		Version:           1,
		RootDir:           abs,
		Include:           scanner.DefaultIncludePatterns(),
		Exclude:           scanner.DefaultExcludePatterns(),
		Languages:         nil,
		Frameworks:        nil,
		MaxFileSize:       1024 * 1024,
		ExtractDocstrings: true,
		TrackCallSites:    true,
		EnableEmbeddings:  true,
	}
}

// Load reads the config for projectRoot, returning the default
// configuration if no config file exists yet. root_dir is always
// overwritten with the actual absolute project root after parsing — a
// config file committed from another machine's path must not leak into
// this run.
func Load(projectRoot string) (Config, error) {
	path := Path(projectRoot)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(projectRoot), nil
	}
	if err != nil {
		return Config{}, cgerr.Wrap(cgerr.KindInit, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, cgerr.Wrap(cgerr.KindInit, err)
	}

	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	cfg.RootDir = abs
	return cfg, nil
}

// Save writes cfg to projectRoot's config file, creating the .coraline
// directory if needed. The persisted copy always has root_dir set to "."
// so the file is portable across checkouts and machines; Load is the
// counterpart that restores the real path on read.
func Save(projectRoot string, cfg Config) error {
	path := Path(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cgerr.Wrap(cgerr.KindInit, err)
	}

	toSave := cfg
	toSave.RootDir = "."

	raw, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return cgerr.Wrap(cgerr.KindInit, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return cgerr.Wrap(cgerr.KindInit, err)
	}
	return nil
}

// EnsureLayout creates the .coraline directory and its .gitignore if
// absent, excluding the database (with its WAL/SHM files) and *.cache
// files from version control.
func EnsureLayout(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".coraline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cgerr.Wrap(cgerr.KindInit, err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "memories"), 0o755); err != nil {
		return cgerr.Wrap(cgerr.KindInit, err)
	}

	gitignore := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		content := "codegraph.db\ncodegraph.db-wal\ncodegraph.db-shm\n*.cache\n"
		if err := os.WriteFile(gitignore, []byte(content), 0o644); err != nil {
			return cgerr.Wrap(cgerr.KindInit, err)
		}
	}
	return nil
}

// AddIncludePatterns appends patterns not already present.
func AddIncludePatterns(cfg *Config, patterns []string) {
	for _, p := range patterns {
		if !contains(cfg.Include, p) {
			cfg.Include = append(cfg.Include, p)
		}
	}
}

// AddExcludePatterns appends patterns not already present.
func AddExcludePatterns(cfg *Config, patterns []string) {
	for _, p := range patterns {
		if !contains(cfg.Exclude, p) {
			cfg.Exclude = append(cfg.Exclude, p)
		}
	}
}

// AddCustomPattern upserts a custom pattern by name.
func AddCustomPattern(cfg *Config, name, pattern string, kind graph.NodeKind) {
	for i := range cfg.CustomPatterns {
		if cfg.CustomPatterns[i].Name == name {
			cfg.CustomPatterns[i].Pattern = pattern
			cfg.CustomPatterns[i].Kind = kind
			return
		}
	}
	cfg.CustomPatterns = append(cfg.CustomPatterns, CustomPattern{Name: name, Pattern: pattern, Kind: kind})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
