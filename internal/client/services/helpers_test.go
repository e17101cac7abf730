package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var cheapParams = cryptox.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

var errDiskFull = errors.New("disk full")

// flakyStore wraps a MemoryStore and fails writes while failWrites is set.
type flakyStore struct {
	*kv.MemoryStore
	failWrites bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.MemoryStore.Delete(ctx, key)
}

type fixture struct {
	store *flakyStore
	gw    *persistence.Gateway
	cat   *catalog.Static
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &flakyStore{MemoryStore: kv.NewMemoryStore()}
	return &fixture{
		store: store,
		gw:    persistence.NewGateway(store, logging.Nop()),
		cat:   catalog.Default(),
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// restart returns a gateway over the same store, as a fresh process would see it.
func (f *fixture) restart() *persistence.Gateway {
	return persistence.NewGateway(f.store, logging.Nop())
}

func (f *fixture) cart() *CartStore {
	return NewCartStore(f.gw, f.cat, logging.Nop())
}

func (f *fixture) favorites() *FavoritesSet {
	return NewFavoritesSet(f.gw, f.cat, logging.Nop())
}

func (f *fixture) clock() func() time.Time {
	return func() time.Time { return f.now }
}

func (f *fixture) users(opts ...DirectoryOption) *UserDirectory {
	opts = append([]DirectoryOption{WithHashParams(cheapParams), WithClock(f.clock())}, opts...)
	return NewUserDirectory(f.gw, logging.Nop(), opts...)
}

func (f *fixture) raw(t *testing.T, key string) []byte {
	t.Helper()
	v, err := f.store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("raw get %s: %v", key, err)
	}
	return v
}
