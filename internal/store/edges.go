package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// InsertEdges writes a batch of edges in one statement loop. Like
// InsertNodes, callers run this inside WithTransaction.
func (s *Store) InsertEdges(edges []graph.Edge) error {
	if len(edges) == 0 {
		return nil
	}

	stmt := `INSERT INTO edges (source, target, kind, metadata_json, line, col) VALUES (?,?,?,?,?,?)`

	for _, e := range edges {
		var metaJSON any
		if len(e.Metadata) > 0 {
			b, err := json.Marshal(e.Metadata)
			if err != nil {
				return fmt.Errorf("marshal edge metadata %s->%s: %w", e.Source, e.Target, err)
			}
			metaJSON = string(b)
		}
		if _, err := s.q.Exec(stmt, e.Source, e.Target, string(e.Kind), metaJSON, nullableInt(e.Line), nullableInt(e.Column)); err != nil {
			return fmt.Errorf("insert edge %s->%s (%s): %w", e.Source, e.Target, e.Kind, err)
		}
	}
	return nil
}

func nullableInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func scanEdge(rows *sql.Rows) (graph.Edge, error) {
	var e graph.Edge
	var kind string
	var metaJSON sql.NullString
	var line, col sql.NullInt64

	if err := rows.Scan(&e.Source, &e.Target, &kind, &metaJSON, &line, &col); err != nil {
		return graph.Edge{}, err
	}
	e.Kind = graph.EdgeKind(kind)
	e.Line = line.Int64
	e.Column = col.Int64
	if metaJSON.Valid && metaJSON.String != "" {
		if err := json.Unmarshal([]byte(metaJSON.String), &e.Metadata); err != nil {
			return graph.Edge{}, err
		}
	}
	return e, nil
}

func buildKindFilter(kinds []graph.EdgeKind) (string, []any) {
	if len(kinds) == 0 {
		return "", nil
	}
	placeholders := make([]string, len(kinds))
	args := make([]any, len(kinds))
	for i, k := range kinds {
		placeholders[i] = "?"
		args[i] = string(k)
	}
	return " AND kind IN (" + strings.Join(placeholders, ",") + ")", args
}

// EdgesFrom returns edges whose source is sourceID, optionally filtered by
// kind and capped by limit. Implements graph.EdgeSource.
func (s *Store) EdgesFrom(sourceID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	filter, filterArgs := buildKindFilter(kinds)
	query := "SELECT source, target, kind, metadata_json, line, col FROM edges WHERE source=?" + filter + " LIMIT ?"
	args := append([]any{sourceID}, filterArgs...)
	args = append(args, limit)
	return s.queryEdges(query, args...)
}

// EdgesTo returns edges whose target is targetID, optionally filtered by
// kind and capped by limit. Implements graph.EdgeSource.
func (s *Store) EdgesTo(targetID string, kinds []graph.EdgeKind, limit int) ([]graph.Edge, error) {
	filter, filterArgs := buildKindFilter(kinds)
	query := "SELECT source, target, kind, metadata_json, line, col FROM edges WHERE target=?" + filter + " LIMIT ?"
	args := append([]any{targetID}, filterArgs...)
	args = append(args, limit)
	return s.queryEdges(query, args...)
}

func (s *Store) queryEdges(query string, args ...any) ([]graph.Edge, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountEdgesByKind reports per-kind edge counts, surfaced by the CLI's
// `status` command.
func (s *Store) CountEdgesByKind() (map[graph.EdgeKind]int, error) {
	rows, err := s.q.Query("SELECT kind, COUNT(*) FROM edges GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[graph.EdgeKind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		out[graph.EdgeKind(kind)] = count
	}
	return out, rows.Err()
}
