package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// GetFile returns the tracked file record for path, or (nil, nil) if
// untracked.
func (s *Store) GetFile(path string) (*graph.FileRecord, error) {
	row := s.q.QueryRow(`SELECT path, content_hash, language, size, modified_at, indexed_at, node_count, errors_json
		FROM files WHERE path=?`, path)
	return scanFileRecord(row)
}

// ListFiles returns every tracked file record.
func (s *Store) ListFiles() ([]graph.FileRecord, error) {
	rows, err := s.q.Query(`SELECT path, content_hash, language, size, modified_at, indexed_at, node_count, errors_json FROM files`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.FileRecord
	for rows.Next() {
		rec, err := scanFileRecord(rows)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, rows.Err()
}

// UpsertFile inserts or replaces the tracked record for rec.Path.
func (s *Store) UpsertFile(rec graph.FileRecord) error {
	var errsJSON any
	if len(rec.Errors) > 0 {
		b, err := json.Marshal(rec.Errors)
		if err != nil {
			return fmt.Errorf("marshal file errors for %s: %w", rec.Path, err)
		}
		errsJSON = string(b)
	}

	_, err := s.q.Exec(`INSERT INTO files (path, content_hash, language, size, modified_at, indexed_at, node_count, errors_json)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash=excluded.content_hash, language=excluded.language, size=excluded.size,
			modified_at=excluded.modified_at, indexed_at=excluded.indexed_at,
			node_count=excluded.node_count, errors_json=excluded.errors_json`,
		rec.Path, rec.ContentHash, string(rec.Language), rec.Size, rec.ModifiedAt, rec.IndexedAt, rec.NodeCount, errsJSON)
	return err
}

// DeleteFile removes the file record and, in the same call, every node
// whose file_path matches (cascading to edges and unresolved refs).
// Callers run this inside WithTransaction for atomicity with node deletion.
func (s *Store) DeleteFile(path string) error {
	if err := s.DeleteNodesByFile(path); err != nil {
		return fmt.Errorf("delete nodes for %s: %w", path, err)
	}
	_, err := s.q.Exec("DELETE FROM files WHERE path=?", path)
	return err
}

func scanFileRecord(row rowScanner) (*graph.FileRecord, error) {
	var rec graph.FileRecord
	var language string
	var errsJSON sql.NullString

	err := row.Scan(&rec.Path, &rec.ContentHash, &language, &rec.Size, &rec.ModifiedAt, &rec.IndexedAt, &rec.NodeCount, &errsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Language = graph.Language(language)

	if errsJSON.Valid && errsJSON.String != "" {
		if err := json.Unmarshal([]byte(errsJSON.String), &rec.Errors); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}
