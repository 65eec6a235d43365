package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/greysquirr3l/coraline/internal/graph"
)

func marshalStrings(ss []string) (any, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalStrings(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertNodes writes a batch of symbol nodes in one statement loop. Callers
// are expected to invoke this inside WithTransaction so the batch commits
// or rolls back atomically.
func (s *Store) InsertNodes(nodes []graph.Node) error {
	if len(nodes) == 0 {
		return nil
	}

	stmt := `INSERT INTO nodes (
		id, kind, name, qualified_name, file_path, language,
		start_line, end_line, start_column, end_column,
		docstring, signature, visibility,
		is_exported, is_async, is_static, is_abstract,
		decorators_json, type_parameters_json, updated_at
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(id) DO UPDATE SET
		kind=excluded.kind, name=excluded.name, qualified_name=excluded.qualified_name,
		file_path=excluded.file_path, language=excluded.language,
		start_line=excluded.start_line, end_line=excluded.end_line,
		start_column=excluded.start_column, end_column=excluded.end_column,
		docstring=excluded.docstring, signature=excluded.signature, visibility=excluded.visibility,
		is_exported=excluded.is_exported, is_async=excluded.is_async,
		is_static=excluded.is_static, is_abstract=excluded.is_abstract,
		decorators_json=excluded.decorators_json, type_parameters_json=excluded.type_parameters_json,
		updated_at=excluded.updated_at`

	for _, n := range nodes {
		decorators, err := marshalStrings(n.Decorators)
		if err != nil {
			return fmt.Errorf("marshal decorators for %s: %w", n.ID, err)
		}
		typeParams, err := marshalStrings(n.TypeParameters)
		if err != nil {
			return fmt.Errorf("marshal type parameters for %s: %w", n.ID, err)
		}

		if _, err := s.q.Exec(stmt,
			n.ID, string(n.Kind), n.Name, n.QualifiedName, n.FilePath, string(n.Language),
			n.StartLine, n.EndLine, n.StartColumn, n.EndColumn,
			nullableString(n.Docstring), nullableString(n.Signature), nullableString(string(n.Visibility)),
			boolToInt(n.IsExported), boolToInt(n.IsAsync), boolToInt(n.IsStatic), boolToInt(n.IsAbstract),
			decorators, typeParams, n.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const nodeColumns = `id, kind, name, qualified_name, file_path, language,
	start_line, end_line, start_column, end_column,
	docstring, signature, visibility,
	is_exported, is_async, is_static, is_abstract,
	decorators_json, type_parameters_json, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*graph.Node, error) {
	var n graph.Node
	var kind, language string
	var visibility sql.NullString
	var docstring, signature sql.NullString
	var decorators, typeParams sql.NullString

	err := row.Scan(
		&n.ID, &kind, &n.Name, &n.QualifiedName, &n.FilePath, &language,
		&n.StartLine, &n.EndLine, &n.StartColumn, &n.EndColumn,
		&docstring, &signature, &visibility,
		&n.IsExported, &n.IsAsync, &n.IsStatic, &n.IsAbstract,
		&decorators, &typeParams, &n.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
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

// GetNode loads a single node by id, returning (nil, nil) if absent.
func (s *Store) GetNode(id string) (*graph.Node, error) {
	row := s.q.QueryRow("SELECT "+nodeColumns+" FROM nodes WHERE id=?", id)
	return scanNode(row)
}

// FindByName returns every node whose name matches exactly.
func (s *Store) FindByName(name string) ([]graph.Node, error) {
	rows, err := s.q.Query("SELECT "+nodeColumns+" FROM nodes WHERE name=?", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNodes(rows)
}

// FindCallableByName returns Function/Method nodes matching name exactly —
// the candidate generation step for Calls-kind unresolved references.
func (s *Store) FindCallableByName(name string) ([]graph.Node, error) {
	rows, err := s.q.Query("SELECT "+nodeColumns+" FROM nodes WHERE name=? AND kind IN (?,?)",
		name, string(graph.KindFunction), string(graph.KindMethod))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNodes(rows)
}

// FindExportsByModule returns Export nodes whose signature names
// modulePath — the candidate set for import-hint resolution.
func (s *Store) FindExportsByModule(modulePath string) ([]graph.Node, error) {
	rows, err := s.q.Query("SELECT "+nodeColumns+" FROM nodes WHERE kind=? AND signature=?",
		string(graph.KindExport), modulePath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNodes(rows)
}

// FindImportsInFile returns Import nodes declared in filePath whose local
// binding name equals name — used to build the resolver's import hint.
func (s *Store) FindImportsInFile(filePath, name string) ([]graph.Node, error) {
	rows, err := s.q.Query("SELECT "+nodeColumns+" FROM nodes WHERE kind=? AND file_path=? AND name=?",
		string(graph.KindImport), filePath, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNodes(rows)
}

func collectNodes(rows *sql.Rows) ([]graph.Node, error) {
	var out []graph.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, rows.Err()
}

// DeleteNodesByFile deletes every node whose file_path matches path,
// cascading to edges and unresolved references that reference them.
func (s *Store) DeleteNodesByFile(path string) error {
	_, err := s.q.Exec("DELETE FROM nodes WHERE file_path=?", path)
	return err
}
