package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for storage backends.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate brings the schema up to date. Idempotent.
	Migrate(ctx context.Context) error

	CreateMemo(ctx context.Context, create *Memo) (*Memo, error)
	ListMemos(ctx context.Context, find *FindMemo) ([]*Memo, error)
	// GetMemo returns sql.ErrNoRows when no memo matches the id.
	GetMemo(ctx context.Context, id string) (*Memo, error)
	UpdateMemo(ctx context.Context, update *UpdateMemo) (*Memo, error)
	// DeleteMemo succeeds silently when the id does not exist.
	DeleteMemo(ctx context.Context, id string) error
}
