package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// InsertUnresolved writes a batch of deferred reference bindings in one
// statement loop, run inside WithTransaction alongside the file's node and
// edge batches.
func (s *Store) InsertUnresolved(refs []graph.UnresolvedReference) error {
	if len(refs) == 0 {
		return nil
	}

	stmt := `INSERT INTO unresolved_refs (from_node_id, reference_name, reference_kind, line, col, candidates_json)
		VALUES (?,?,?,?,?,?)`

	for _, r := range refs {
		var candJSON any
		if len(r.Candidates) > 0 {
			b, err := json.Marshal(r.Candidates)
			if err != nil {
				return fmt.Errorf("marshal candidates for unresolved ref %s: %w", r.ReferenceName, err)
			}
			candJSON = string(b)
		}
		if _, err := s.q.Exec(stmt, r.FromNodeID, r.ReferenceName, string(r.ReferenceKind), r.Line, r.Column, candJSON); err != nil {
			return fmt.Errorf("insert unresolved ref %s: %w", r.ReferenceName, err)
		}
	}
	return nil
}

// ListUnresolved returns up to limit unresolved references, oldest first —
// the resolver's per-invocation read.
func (s *Store) ListUnresolved(limit int) ([]graph.UnresolvedReference, error) {
	rows, err := s.q.Query(`SELECT id, from_node_id, reference_name, reference_kind, line, col, candidates_json
		FROM unresolved_refs ORDER BY id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.UnresolvedReference
	for rows.Next() {
		var r graph.UnresolvedReference
		var kind string
		var candJSON sql.NullString
		if err := rows.Scan(&r.ID, &r.FromNodeID, &r.ReferenceName, &kind, &r.Line, &r.Column, &candJSON); err != nil {
			return nil, err
		}
		r.ReferenceKind = graph.EdgeKind(kind)
		if candJSON.Valid && candJSON.String != "" {
			if err := json.Unmarshal([]byte(candJSON.String), &r.Candidates); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteUnresolved removes the given unresolved_refs rows in one
// statement, run inside the same transaction that inserts the edges the
// resolver promoted them to.
func (s *Store) DeleteUnresolved(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	_, err := s.q.Exec("DELETE FROM unresolved_refs WHERE id IN ("+strings.Join(placeholders, ",")+")", args...)
	return err
}

// CountUnresolved reports the current unresolved_refs row count.
func (s *Store) CountUnresolved() (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM unresolved_refs").Scan(&n)
	return n, err
}
