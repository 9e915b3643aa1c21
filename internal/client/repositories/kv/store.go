package kv

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docvault/internal/dbx"
)

// DBStore is a Store backed by a *sql.DB.
type DBStore struct {
	Repository
	db      *sql.DB
	newRepo func(dbx.DBTX) Repository
}

func NewSQLiteStore(db *sql.DB) *DBStore {
	return &DBStore{
		Repository: NewSQLiteRepository(db),
		db:         db,
		newRepo:    func(tx dbx.DBTX) Repository { return NewSQLiteRepository(tx) },
	}
}

func NewPostgresStore(db *sql.DB) *DBStore {
	return &DBStore{
		Repository: NewPostgresRepository(db),
		db:         db,
		newRepo:    func(tx dbx.DBTX) Repository { return NewPostgresRepository(tx) },
	}
}

// InTx runs fn with a repository bound to a single transaction.
func (s *DBStore) InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.newRepo(tx))
	})
}

var _ Store = (*DBStore)(nil)
