// Package scanner walks a project tree and applies include/exclude glob
// sets to produce the ordered list of candidate relative paths the indexer
// feeds to the parser adapter and extractor.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures one scan. Both Include and Exclude are lists of glob
// patterns in the `**/*.ext` shape doublestar understands; plain
// path/filepath.Match cannot express the leading `**` wildcard these
// patterns rely on.
type Options struct {
	Include []string
	Exclude []string
}

// File is one discovered candidate: its path relative to the project root,
// using forward slashes regardless of host OS.
type File struct {
	RelPath string
}

// Scan walks root depth-first. For each entry it computes the root-relative
// path (directories get a trailing slash before matching), applies the
// exclude set first — pruning directories and skipping files on match —
// then applies the include set, emitting files that match. Matching is
// case-sensitive, matching POSIX filesystem semantics.
func Scan(root string, opts Options) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var out []File
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matchPath := rel
		if d.IsDir() {
			matchPath = rel + "/"
		}

		if matchesAny(opts.Exclude, matchPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if matchesAny(opts.Include, rel) {
			out = append(out, File{RelPath: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

func matchesAny(patterns []string, path string) bool {
	bare := strings.TrimSuffix(path, "/")
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		// A directory-targeted exclude like "**/node_modules/**" must also
		// prune the node_modules directory entry itself, which has no
		// trailing segment for "**" to match against.
		if dirPattern, isDirGlob := strings.CutSuffix(pattern, "/**"); isDirGlob {
			if ok, err := doublestar.Match(dirPattern, bare); err == nil && ok {
				return true
			}
		}
	}
	return false
}
