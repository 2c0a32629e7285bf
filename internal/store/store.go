// Package store persists stored searches: named chat-command strings a
// user has saved so the scheduled job can re-run them later. The store
// never validates or compiles Input itself; compiling is the job's
// responsibility, calling archquery.Parse when it wakes up. That keeps
// the compiler free of session state while giving the external scheduler
// a concrete persistence boundary.
package store

import (
	"context"
	"time"
)

// StoredQuery is one saved chat-command string.
type StoredQuery struct {
	Name      string
	Input     string // the raw chat-command string, re-compiled on each run
	CreatedBy string
	CreatedAt time.Time
}

// Store persists StoredQuery values. List accepts optional sort tokens
// (see internal/web/query.ParseSort) so the debug server can expose a
// stable, user-chosen ordering without the store losing its concrete,
// database-backed type.
type Store interface {
	Save(ctx context.Context, q StoredQuery) error
	Get(ctx context.Context, name string) (StoredQuery, error)
	List(ctx context.Context, sorts ...string) ([]StoredQuery, error)
	Delete(ctx context.Context, name string) error
}
