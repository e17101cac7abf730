package kv

import (
	"context"
)

// Store is the whole-value byte store behind the persistence gateway.
// ReplaceAll with a nil map empties the store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	ReplaceAll(ctx context.Context, data map[string][]byte) error
	Close() error
}
