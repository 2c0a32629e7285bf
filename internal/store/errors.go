package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get and Delete when no row matches the name.
var ErrNotFound = errors.New("stored query not found")

// ErrAlreadyExists is returned by Save when a row with that name already
// exists; names are the store's primary key.
var ErrAlreadyExists = errors.New("stored query already exists")

// convertDBError maps a database/sql or driver-specific error to the
// store's own error values. Both backends route Save through this, so
// both must translate their own unique-constraint error here.
func convertDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, pgErr.Detail)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, sqliteErr.Error())
	}

	return err
}
