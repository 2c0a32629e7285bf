package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/archquery/archquery/internal/web/query"
)

// SQLiteStore is a SQLite-backed Store, for single-binary deployments that
// don't want a separate Postgres dependency.
type SQLiteStore struct {
	db *sql.DB
}

// schemaDDL creates the stored_queries table if it is missing. SQLite has
// no migration tool in this module, so OpenSQLite applies it eagerly.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS stored_queries (
	name       TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at DATETIME NOT NULL
)`

// OpenSQLite opens (and, if necessary, creates) the SQLite database at
// path and ensures its schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore wraps an already-opened *sql.DB.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, q StoredQuery) error {
	const stmt = `INSERT INTO stored_queries (name, input, created_by, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt, q.Name, q.Input, q.CreatedBy, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("save stored query %q: %w", q.Name, convertDBError(err))
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (StoredQuery, error) {
	const stmt = `SELECT name, input, created_by, created_at FROM stored_queries WHERE name = ?`
	row := s.db.QueryRowContext(ctx, stmt, name)

	var q StoredQuery
	if err := row.Scan(&q.Name, &q.Input, &q.CreatedBy, &q.CreatedAt); err != nil {
		return StoredQuery{}, fmt.Errorf("get stored query %q: %w", name, convertDBError(err))
	}
	return q, nil
}

func (s *SQLiteStore) List(ctx context.Context, sorts ...string) ([]StoredQuery, error) {
	stmt := `SELECT name, input, created_by, created_at FROM stored_queries`
	orderBy, err := query.BuildSortClause(sorts, storedQueriesTable, query.ValidSortFields)
	if err != nil {
		return nil, fmt.Errorf("list stored queries: %w", err)
	}
	if orderBy != "" {
		stmt += " " + orderBy
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list stored queries: %w", convertDBError(err))
	}
	defer rows.Close()

	var results []StoredQuery
	for rows.Next() {
		var q StoredQuery
		if err := rows.Scan(&q.Name, &q.Input, &q.CreatedBy, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stored query row: %w", err)
		}
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stored queries: %w", err)
	}
	return results, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	const stmt = `DELETE FROM stored_queries WHERE name = ?`
	result, err := s.db.ExecContext(ctx, stmt, name)
	if err != nil {
		return fmt.Errorf("delete stored query %q: %w", name, convertDBError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stored query %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete stored query %q: %w", name, ErrNotFound)
	}
	return nil
}
