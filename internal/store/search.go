package store

import (
	"database/sql"
	"strings"

	"github.com/greysquirr3l/coraline/internal/graph"
)

// buildFTSQuery turns a free-text query into an FTS5 MATCH expression.
// Multi-word queries are OR-joined so a hit on any term counts.
func buildFTSQuery(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " OR ")
}

// Search runs a lexical query against the FTS index, optionally restricted
// to a single node kind, returning at most limit hits ordered by FTS rank
// ascending then name length ascending (favoring exact/near-exact name
// hits when ranks tie).
func (s *Store) Search(query string, kind *graph.NodeKind, limit int) ([]graph.SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	ftsQuery := buildFTSQuery(query)

	sqlQuery := "SELECT " + prefixColumns("n", nodeColumns) + `, nodes_fts.rank AS score
		FROM nodes n
		INNER JOIN nodes_fts ON n.rowid = nodes_fts.rowid
		WHERE nodes_fts MATCH ?`
	args := []any{ftsQuery}

	if kind != nil {
		sqlQuery += " AND n.kind = ?"
		args = append(args, string(*kind))
	}

	sqlQuery += " ORDER BY score ASC, length(n.name) ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.q.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []graph.SearchResult
	for rows.Next() {
		var score float64
		n, err := scanNodeWithTrailingScore(rows, &score)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, graph.SearchResult{Node: *n, Score: score})
		}
	}
	return out, rows.Err()
}

func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
	}
	return strings.Join(parts, ", ")
}

// scanNodeWithTrailingScore scans the 20 node columns plus a trailing FTS
// rank column from a row produced by Search's query.
func scanNodeWithTrailingScore(rows rowScanner, score *float64) (*graph.Node, error) {
	var n graph.Node
	var kind, language string
	var visibility, docstring, signature sql.NullString
	var decorators, typeParams sql.NullString

	err := rows.Scan(
		&n.ID, &kind, &n.Name, &n.QualifiedName, &n.FilePath, &language,
		&n.StartLine, &n.EndLine, &n.StartColumn, &n.EndColumn,
		&docstring, &signature, &visibility,
		&n.IsExported, &n.IsAsync, &n.IsStatic, &n.IsAbstract,
		&decorators, &typeParams, &n.UpdatedAt,
		score,
	)
	if err != nil {
		return nil, err
	}

	n.Kind = graph.NodeKind(kind)
	n.Language = graph.Language(language)
	n.Visibility = graph.Visibility(visibility.String)
	n.Docstring = docstring.String
	n.Signature = signature.String

	if n.Decorators, err = unmarshalStrings(decorators); err != nil {
		return nil, err
	}
	if n.TypeParameters, err = unmarshalStrings(typeParams); err != nil {
		return nil, err
	}
	return &n, nil
}
