// Package resolver implements the post-extraction pass that binds
// deferred call references to concrete symbols. It reads
// unresolved_refs rows from the store, ranks each reference's candidate
// set using import hints, file locality, and export matching, and
// promotes unambiguous winners to real Calls edges.
package resolver

import (
	"path"
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// Source is the store read/write surface the resolver needs. *store.Store
// implements this directly.
type Source interface {
	ListUnresolved(limit int) ([]graph.UnresolvedReference, error)
	GetNode(id string) (*graph.Node, error)
	FindByName(name string) ([]graph.Node, error)
	FindCallableByName(name string) ([]graph.Node, error)
	FindExportsByModule(modulePath string) ([]graph.Node, error)
	FindImportsInFile(filePath, name string) ([]graph.Node, error)
	InsertEdges(edges []graph.Edge) error
	DeleteUnresolved(ids []int64) error
}

// Result summarizes one resolver invocation.
type Result struct {
	Scanned   int
	Resolved  int
	Remaining int
}

// DefaultLimit caps how many unresolved references one invocation reads.
const DefaultLimit = 10_000

// Resolve reads up to limit unresolved references and attempts to
// promote each to a Calls edge. Ranking order: import hint + store export
// match, then file-path suffix match against the hint, then same-file,
// then same-directory, then everything else. Only a bucket containing
// exactly one candidate gets promoted; all other references are left for
// a future pass. Resolved edges are batch-inserted and their source rows
// batch-deleted; callers wrap Resolve in store.WithTransaction so both
// land atomically.
func Resolve(src Source, limit int) (Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	refs, err := src.ListUnresolved(limit)
	if err != nil {
		return Result{}, err
	}
	if len(refs) == 0 {
		return Result{}, nil
	}

	var resolvedEdges []graph.Edge
	var resolvedIDs []int64

	for _, ref := range refs {
		fromNode, err := src.GetNode(ref.FromNodeID)
		if err != nil {
			return Result{}, err
		}

		candidates, err := candidatesFor(src, ref)
		if err != nil {
			return Result{}, err
		}

		hint, err := importHint(src, fromNode, ref.ReferenceName)
		if err != nil {
			return Result{}, err
		}

		ranked, err := rankCandidates(src, candidates, fromNode, hint, ref.ReferenceName)
		if err != nil {
			return Result{}, err
		}

		if len(ranked) == 1 {
			resolvedEdges = append(resolvedEdges, graph.Edge{
				Source: ref.FromNodeID, Target: ranked[0].ID, Kind: ref.ReferenceKind,
				Line: ref.Line, Column: ref.Column,
			})
			resolvedIDs = append(resolvedIDs, ref.ID)
		}
	}

	if len(resolvedEdges) > 0 {
		if err := src.InsertEdges(resolvedEdges); err != nil {
			return Result{}, err
		}
	}
	if len(resolvedIDs) > 0 {
		if err := src.DeleteUnresolved(resolvedIDs); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Scanned:   len(refs),
		Resolved:  len(resolvedIDs),
		Remaining: len(refs) - len(resolvedIDs),
	}, nil
}

func candidatesFor(src Source, ref graph.UnresolvedReference) ([]graph.Node, error) {
	if ref.ReferenceKind == graph.EdgeCalls {
		return src.FindCallableByName(ref.ReferenceName)
	}
	return src.FindByName(ref.ReferenceName)
}

// hint is a parsed Import node signature: the module path it names and,
// for aliased/renamed bindings, the original exported symbol.
type hint struct {
	modulePath string
	exportName string
}

// importHint looks up an Import node in fromNode's file whose local
// binding equals symbolName, and parses its signature into a hint. Returns
// a nil hint if no matching Import node exists or fromNode is nil.
func importHint(src Source, fromNode *graph.Node, symbolName string) (*hint, error) {
	if fromNode == nil {
		return nil, nil
	}
	imports, err := src.FindImportsInFile(fromNode.FilePath, symbolName)
	if err != nil {
		return nil, err
	}
	if len(imports) == 0 {
		return nil, nil
	}
	imp := imports[0]
	if h := parseImportSignature(imp.Signature); h != nil {
		return h, nil
	}
	return &hint{modulePath: imp.Name}, nil
}

func parseImportSignature(signature string) *hint {
	if strings.TrimSpace(signature) == "" {
		return nil
	}
	if modulePath, exportName, ok := strings.Cut(signature, "|export="); ok {
		return &hint{modulePath: modulePath, exportName: exportName}
	}
	return &hint{modulePath: signature}
}

// rankCandidates returns the highest-priority non-empty bucket. A nil
// fromNode (orphaned reference) skips ranking entirely and returns
// candidates unranked.
func rankCandidates(src Source, nodes []graph.Node, fromNode *graph.Node, h *hint, symbolName string) ([]graph.Node, error) {
	if fromNode == nil {
		return nodes, nil
	}

	if h != nil {
		exportName := h.exportName
		if exportName == "" {
			exportName = symbolName
		}
		if exports, err := exportCandidates(src, h.modulePath, exportName); err != nil {
			return nil, err
		} else if exports != nil {
			return exports, nil
		}
	}

	fromDir := path.Dir(fromNode.FilePath)

	var importMatches, sameFile, sameDir, others []graph.Node
	for _, n := range nodes {
		if h != nil && matchesImportHint(n.FilePath, h.modulePath) {
			importMatches = append(importMatches, n)
			continue
		}
		if n.FilePath == fromNode.FilePath {
			sameFile = append(sameFile, n)
		} else if path.Dir(n.FilePath) == fromDir {
			sameDir = append(sameDir, n)
		} else {
			others = append(others, n)
		}
	}

	switch {
	case len(importMatches) > 0:
		return importMatches, nil
	case len(sameFile) > 0:
		return sameFile, nil
	case len(sameDir) > 0:
		return sameDir, nil
	default:
		return others, nil
	}
}

func exportCandidates(src Source, modulePath, exportName string) ([]graph.Node, error) {
	exports, err := src.FindExportsByModule(modulePath)
	if err != nil {
		return nil, err
	}
	var exact []graph.Node
	for _, e := range exports {
		if e.Name == exportName {
			exact = append(exact, e)
		}
	}
	if len(exact) == 0 {
		return nil, nil
	}
	return exact, nil
}

// matchesImportHint implements the "path-suffix equality after stripping
// language extensions, tolerating mod.rs under a directory named after the
// hint" rule. A scoped hint whose tail is the imported symbol itself
// (crate::math::add) is also matched against its module segment (math),
// since the symbol never appears in the file path.
func matchesImportHint(filePath, modulePath string) bool {
	segments := splitModulePath(modulePath)
	if len(segments) == 0 {
		return false
	}

	candidates := []string{stripKnownExtension(segments[len(segments)-1])}
	if len(segments) > 1 {
		candidates = append(candidates, segments[len(segments)-2])
	}

	pathNoExt := stripKnownExtension(filePath)
	stem := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

	for _, hintClean := range candidates {
		if hintClean == "" {
			continue
		}
		if strings.HasSuffix(pathNoExt, hintClean) {
			return true
		}
		if stem == hintClean {
			return true
		}
		if strings.HasSuffix(filePath, "/mod.rs") && path.Base(path.Dir(filePath)) == hintClean {
			return true
		}
	}
	return false
}

func splitModulePath(modulePath string) []string {
	replaced := strings.ReplaceAll(modulePath, "::", "/")
	parts := strings.Split(replaced, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." && p != ".." {
			out = append(out, p)
		}
	}
	return out
}

func stripKnownExtension(p string) string {
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx", ".rs"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}
