package kv

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is a Repository that can also run several operations atomically.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
