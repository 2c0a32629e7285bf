package store

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "pgx" database/sql driver so sql.Open("pgx", dsn) works
	// without the caller wiring a pgxpool.Pool by hand; Postgres still
	// speaks to the database entirely through jackc/pgx/v5 underneath.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/archquery/archquery/internal/web/query"
)

const storedQueriesTable = "stored_queries"

// PostgresStore is a Postgres-backed Store.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a pgx-backed connection pool to dsn and verifies it
// with a Ping.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres store: %w", err)
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an already-opened *sql.DB, the way tests point a
// PostgresStore at a go-sqlmock connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Save(ctx context.Context, q StoredQuery) error {
	const stmt = `INSERT INTO stored_queries (name, input, created_by, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, stmt, q.Name, q.Input, q.CreatedBy, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("save stored query %q: %w", q.Name, convertDBError(err))
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, name string) (StoredQuery, error) {
	const stmt = `SELECT name, input, created_by, created_at FROM stored_queries WHERE name = $1`
	row := s.db.QueryRowContext(ctx, stmt, name)

	var q StoredQuery
	if err := row.Scan(&q.Name, &q.Input, &q.CreatedBy, &q.CreatedAt); err != nil {
		return StoredQuery{}, fmt.Errorf("get stored query %q: %w", name, convertDBError(err))
	}
	return q, nil
}

func (s *PostgresStore) List(ctx context.Context, sorts ...string) ([]StoredQuery, error) {
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

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	const stmt = `DELETE FROM stored_queries WHERE name = $1`
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
