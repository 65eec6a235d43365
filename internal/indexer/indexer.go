// Package indexer orchestrates the full scan → parse → extract → write →
// resolve pipeline: IndexAll for a from-scratch (or
// forced) run, and Sync for incremental re-indexing driven by content-hash
// comparison against the store's tracked file records.
package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/greysquirr3l/coraline/internal/cgerr"
	"github.com/greysquirr3l/coraline/internal/config"
	"github.com/greysquirr3l/coraline/internal/extractor"
	"github.com/greysquirr3l/coraline/internal/graph"
	"github.com/greysquirr3l/coraline/internal/lang"
	"github.com/greysquirr3l/coraline/internal/resolver"
	"github.com/greysquirr3l/coraline/internal/scanner"
	"github.com/greysquirr3l/coraline/internal/store"
)

// ProgressFunc, if non-nil, is invoked once after each file is processed
// (parsed, skipped, or errored). It does not participate in cancellation;
// a run cannot be aborted through it.
type ProgressFunc func(current, total int, relPath string)

// IndexResult is IndexAll's return value: run counters plus whatever
// non-fatal per-file errors were collected.
type IndexResult struct {
	Success      bool
	FilesIndexed int
	FilesSkipped int
	NodesCreated int
	EdgesCreated int
	Duration     time.Duration
	Errors       []graph.ExtractionError
}

// SyncResult is Sync's return value: files checked, the file counters
// split into added/modified/removed, nodes written, duration, and the
// non-fatal per-file errors.
type SyncResult struct {
	FilesChecked  int
	FilesAdded    int
	FilesModified int
	FilesRemoved  int
	NodesUpdated  int
	Duration      time.Duration
	Errors        []graph.ExtractionError
}

// IndexAll runs scan → (for each file) parse → extract → write, then a
// bounded resolver pass. With force=true the store is cleared first so
// every file is re-extracted from scratch.
func IndexAll(projectRoot string, cfg config.Config, force bool, onProgress ProgressFunc) (IndexResult, error) {
	start := time.Now()
	result := IndexResult{Success: true}

	s, err := store.Initialize(projectRoot)
	if err != nil {
		return IndexResult{}, err
	}
	defer s.Close()

	if force {
		if err := s.Clear(); err != nil {
			return IndexResult{}, cgerr.Wrap(cgerr.KindStore, err)
		}
	}

	files, err := scanner.Scan(projectRoot, scanner.Options{Include: cfg.Include, Exclude: cfg.Exclude})
	if err != nil {
		return IndexResult{}, err
	}

	for i, f := range files {
		outcome, err := indexOneFile(s, projectRoot, cfg, f.RelPath)
		if onProgress != nil {
			onProgress(i+1, len(files), f.RelPath)
		}
		if err != nil {
			result.Errors = append(result.Errors, graph.ExtractionError{
				Message:  fmt.Sprintf("%s: %v", f.RelPath, err),
				Severity: graph.SeverityError,
			})
			continue
		}
		switch outcome.status {
		case statusIndexed:
			result.FilesIndexed++
			result.NodesCreated += outcome.nodeCount
			result.EdgesCreated += outcome.edgeCount
		case statusSkipped:
			result.FilesSkipped++
		}
	}

	if _, err := runResolver(s); err != nil {
		result.Errors = append(result.Errors, graph.ExtractionError{
			Message:  fmt.Sprintf("resolver failed: %v", err),
			Severity: graph.SeverityWarning,
		})
	}

	result.Duration = time.Since(start)
	for _, e := range result.Errors {
		if e.Severity == graph.SeverityError {
			result.Success = false
			break
		}
	}
	return result, nil
}

// Sync re-indexes only what changed: tracked paths absent from the scan
// are deleted, and present paths are only re-parsed if their content hash
// differs from the tracked record.
func Sync(projectRoot string, cfg config.Config, onProgress ProgressFunc) (SyncResult, error) {
	start := time.Now()
	result := SyncResult{}

	s, err := store.Open(projectRoot)
	if err != nil {
		return SyncResult{}, err
	}
	defer s.Close()

	files, err := scanner.Scan(projectRoot, scanner.Options{Include: cfg.Include, Exclude: cfg.Exclude})
	if err != nil {
		return SyncResult{}, err
	}
	current := make(map[string]bool, len(files))
	for _, f := range files {
		current[f.RelPath] = true
	}

	tracked, err := s.ListFiles()
	if err != nil {
		return SyncResult{}, err
	}

	for _, rec := range tracked {
		if !current[rec.Path] {
			if err := s.WithTransaction(func(tx *store.Store) error {
				return tx.DeleteFile(rec.Path)
			}); err != nil {
				result.Errors = append(result.Errors, graph.ExtractionError{
					Message: fmt.Sprintf("delete %s: %v", rec.Path, err), Severity: graph.SeverityError,
				})
				continue
			}
			result.FilesRemoved++
		}
	}

	trackedByPath := make(map[string]graph.FileRecord, len(tracked))
	for _, rec := range tracked {
		trackedByPath[rec.Path] = rec
	}

	result.FilesChecked = len(files)
	for i, f := range files {
		existed, hadRecord := trackedByPath[f.RelPath]

		outcome, err := indexOneFile(s, projectRoot, cfg, f.RelPath)
		if onProgress != nil {
			onProgress(i+1, len(files), f.RelPath)
		}
		if err != nil {
			result.Errors = append(result.Errors, graph.ExtractionError{
				Message: fmt.Sprintf("%s: %v", f.RelPath, err), Severity: graph.SeverityError,
			})
			continue
		}
		if outcome.status != statusIndexed {
			continue
		}
		result.NodesUpdated += outcome.nodeCount
		if hadRecord && outcome.contentHash != existed.ContentHash {
			result.FilesModified++
		} else if !hadRecord {
			result.FilesAdded++
		}
	}

	if _, err := runResolver(s); err != nil {
		result.Errors = append(result.Errors, graph.ExtractionError{
			Message: fmt.Sprintf("resolver failed: %v", err), Severity: graph.SeverityWarning,
		})
	}

	result.Duration = time.Since(start)
	return result, nil
}

type fileStatus int

const (
	statusSkipped fileStatus = iota
	statusIndexed
)

type fileOutcome struct {
	status      fileStatus
	nodeCount   int
	edgeCount   int
	contentHash string
}

// indexOneFile implements the per-path decision tree: read
// bytes, enforce max_file_size, detect language, compute the content hash,
// skip on an unchanged hash, otherwise delete any prior record and
// re-extract, writing nodes/edges/unresolved and the file record in one
// transaction.
func indexOneFile(s *store.Store, projectRoot string, cfg config.Config, relPath string) (fileOutcome, error) {
	fullPath := filepath.Join(projectRoot, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return fileOutcome{}, cgerr.Wrap(cgerr.KindParse, err)
	}

	if cfg.MaxFileSize > 0 && int64(len(content)) > cfg.MaxFileSize {
		return fileOutcome{status: statusSkipped}, nil
	}

	language := lang.LanguageForExtension(filepath.Ext(relPath))
	if language == graph.LangUnknown {
		return fileOutcome{status: statusSkipped}, nil
	}

	contentHash := graph.ContentHash(content)
	existing, err := s.GetFile(relPath)
	if err != nil {
		return fileOutcome{}, cgerr.Wrap(cgerr.KindStore, err)
	}
	if existing != nil && existing.ContentHash == contentHash {
		return fileOutcome{status: statusSkipped}, nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return fileOutcome{}, cgerr.Wrap(cgerr.KindParse, err)
	}

	nowMs := store.Now()
	result := extractor.ExtractFile(projectRoot, relPath, content, language, nowMs)

	err = s.WithTransaction(func(tx *store.Store) error {
		if existing != nil {
			if err := tx.DeleteFile(relPath); err != nil {
				return err
			}
		}
		if err := tx.InsertNodes(result.Nodes); err != nil {
			return err
		}
		if err := tx.InsertEdges(result.Edges); err != nil {
			return err
		}
		if err := tx.InsertUnresolved(result.Unresolved); err != nil {
			return err
		}
		return tx.UpsertFile(graph.FileRecord{
			Path:        relPath,
			ContentHash: contentHash,
			Language:    language,
			Size:        info.Size(),
			ModifiedAt:  info.ModTime().UnixMilli(),
			IndexedAt:   nowMs,
			NodeCount:   int64(len(result.Nodes)),
		})
	})
	if err != nil {
		return fileOutcome{}, cgerr.Wrap(cgerr.KindStore, err)
	}

	return fileOutcome{
		status:      statusIndexed,
		nodeCount:   len(result.Nodes),
		edgeCount:   len(result.Edges),
		contentHash: contentHash,
	}, nil
}

// runResolver runs one resolver pass with edge inserts and unresolved-row
// deletes inside the same transaction, so a crash mid-pass leaves the
// reference table consistent with the edge set.
func runResolver(s *store.Store) (resolver.Result, error) {
	var result resolver.Result
	err := s.WithTransaction(func(tx *store.Store) error {
		r, err := resolver.Resolve(tx, resolver.DefaultLimit)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}
