package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
	path TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	language TEXT NOT NULL,
	size INTEGER NOT NULL,
	modified_at INTEGER NOT NULL,
	indexed_at INTEGER NOT NULL,
	node_count INTEGER NOT NULL,
	errors_json TEXT
);

CREATE TABLE IF NOT EXISTS nodes (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	qualified_name TEXT NOT NULL,
	file_path TEXT NOT NULL,
	language TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	end_line INTEGER NOT NULL,
	start_column INTEGER NOT NULL,
	end_column INTEGER NOT NULL,
	docstring TEXT,
	signature TEXT,
	visibility TEXT,
	is_exported INTEGER NOT NULL DEFAULT 0,
	is_async INTEGER NOT NULL DEFAULT 0,
	is_static INTEGER NOT NULL DEFAULT 0,
	is_abstract INTEGER NOT NULL DEFAULT 0,
	decorators_json TEXT,
	type_parameters_json TEXT,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_nodes_file_path ON nodes(file_path);
CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
CREATE INDEX IF NOT EXISTS idx_nodes_qualified_name ON nodes(qualified_name);
CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);

CREATE TABLE IF NOT EXISTS edges (
	source TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	target TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	metadata_json TEXT,
	line INTEGER,
	col INTEGER
);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source, kind);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target, kind);

CREATE TABLE IF NOT EXISTS unresolved_refs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_node_id TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	reference_name TEXT NOT NULL,
	reference_kind TEXT NOT NULL,
	line INTEGER NOT NULL,
	col INTEGER NOT NULL,
	candidates_json TEXT
);
CREATE INDEX IF NOT EXISTS idx_unresolved_from ON unresolved_refs(from_node_id);

CREATE TABLE IF NOT EXISTS vectors (
	node_id TEXT PRIMARY KEY REFERENCES nodes(id) ON DELETE CASCADE,
	embedding BLOB,
	model TEXT,
	created_at INTEGER
);

CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5(
	name,
	qualified_name,
	docstring,
	signature,
	content='nodes',
	content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS nodes_ai AFTER INSERT ON nodes BEGIN
	INSERT INTO nodes_fts(rowid, name, qualified_name, docstring, signature)
	VALUES (new.rowid, new.name, new.qualified_name, new.docstring, new.signature);
END;

CREATE TRIGGER IF NOT EXISTS nodes_ad AFTER DELETE ON nodes BEGIN
	INSERT INTO nodes_fts(nodes_fts, rowid, name, qualified_name, docstring, signature)
	VALUES('delete', old.rowid, old.name, old.qualified_name, old.docstring, old.signature);
END;

CREATE TRIGGER IF NOT EXISTS nodes_au AFTER UPDATE ON nodes BEGIN
	INSERT INTO nodes_fts(nodes_fts, rowid, name, qualified_name, docstring, signature)
	VALUES('delete', old.rowid, old.name, old.qualified_name, old.docstring, old.signature);
	INSERT INTO nodes_fts(rowid, name, qualified_name, docstring, signature)
	VALUES (new.rowid, new.name, new.qualified_name, new.docstring, new.signature);
END;
`

func (s *Store) applySchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
