// Package store is the persistent, embedded relational graph store: schema
// management, transactional writes, FTS5-backed lexical search, and the
// edge-fetch primitives the graph assembler (internal/graph) composes into
// bounded BFS traversals.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/greysquirr3l/coraline/internal/cgerr"
	"github.com/greysquirr3l/coraline/internal/graph"
)

var _ graph.EdgeSource = (*Store)(nil)

// DatabaseFileName is the store's file name inside .coraline/.
const DatabaseFileName = "codegraph.db"

// Querier abstracts over *sql.DB and *sql.Tx so every query method works
// identically inside and outside a transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store is the embedded graph store. The zero value is not usable; build
// one with Open or Initialize.
type Store struct {
	db *sql.DB
	q  Querier
}

func dbPath(projectRoot string) string {
	return filepath.Join(projectRoot, ".coraline", DatabaseFileName)
}

func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
}

// Initialize creates the .coraline directory and database file if absent
// and applies the schema. Safe to call repeatedly (idempotent).
func Initialize(projectRoot string) (*Store, error) {
	dir := filepath.Join(projectRoot, ".coraline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, cgerr.Wrap(cgerr.KindInit, err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath(projectRoot)))
	if err != nil {
		return nil, cgerr.Wrap(cgerr.KindStore, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, q: db}
	if err := s.applySchema(); err != nil {
		db.Close()
		return nil, cgerr.Wrap(cgerr.KindStore, err)
	}
	return s, nil
}

// Open opens an existing database without reapplying schema. Fails if the
// file does not exist: the project must be initialized first.
func Open(projectRoot string) (*Store, error) {
	path := dbPath(projectRoot)
	if _, err := os.Stat(path); err != nil {
		return nil, cgerr.Wrap(cgerr.KindInit, fmt.Errorf("project not initialized at %s: %w", projectRoot, err))
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, cgerr.Wrap(cgerr.KindStore, err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, q: db}, nil
}

// OpenMemory opens an in-memory store with the schema applied, used by
// tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, cgerr.Wrap(cgerr.KindStore, err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, q: db}
	if err := s.applySchema(); err != nil {
		db.Close()
		return nil, cgerr.Wrap(cgerr.KindStore, err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying *sql.DB for callers that need it directly
// (e.g. tests running ad-hoc queries against the edges table).
func (s *Store) DB() *sql.DB { return s.db }

// Clear deletes every row in every table in one transaction.
func (s *Store) Clear() error {
	return s.WithTransaction(func(tx *Store) error {
		tables := []string{"unresolved_refs", "vectors", "edges", "nodes", "files"}
		for _, t := range tables {
			if _, err := tx.q.Exec("DELETE FROM " + t); err != nil {
				return fmt.Errorf("clear %s: %w", t, err)
			}
		}
		return nil
	})
}

// WithTransaction runs fn against a Store backed by a single transaction,
// committing on success and rolling back on any error (including a panic,
// which is re-raised after rollback). All per-file writes and all resolver
// promotions go through this; batches commit fully or not at all.
func (s *Store) WithTransaction(fn func(tx *Store) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return cgerr.Wrap(cgerr.KindStore, err)
	}

	txStore := &Store{db: s.db, q: tx}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return cgerr.Wrap(cgerr.KindStore, fmt.Errorf("%w (rollback also failed: %v)", err, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return cgerr.Wrap(cgerr.KindStore, err)
	}
	return nil
}

// Now returns the current time as a Unix-millisecond timestamp, the
// convention used for updated_at/indexed_at/modified_at columns.
func Now() int64 {
	return time.Now().UTC().UnixMilli()
}
