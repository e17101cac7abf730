package persistence

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       int     `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func newTestGateway(t *testing.T) (*Gateway, *kv.MemoryStore, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	store := kv.NewMemoryStore()
	return NewGateway(store, log), store, buf
}

func TestLoad_MissingKeyReturnsDefault(t *testing.T) {
	g, _, _ := newTestGateway(t)
	got := Load(context.Background(), g, KeyCart, []item{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGateway(t)

	in := []item{{ID: 2, Price: 44.99, Quantity: 2}, {ID: 1, Price: 39.99, Quantity: 1}}
	require.NoError(t, g.Save(ctx, KeyCart, in))

	out := Load(ctx, g, KeyCart, []item(nil))
	assert.Equal(t, in, out)
}

func TestLoad_CorruptRecordIsDiscarded(t *testing.T) {
	ctx := context.Background()
	g, store, buf := newTestGateway(t)

	require.NoError(t, store.Set(ctx, KeyCart, []byte(`{"secret-digest":`)))

	got := Load(ctx, g, KeyCart, []item{})
	assert.Empty(t, got)

	raw, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Nil(t, raw, "corrupt key must be removed")

	logged := buf.String()
	assert.Contains(t, logged, "discarding corrupt record")
	assert.Contains(t, logged, "key=cart")
	assert.NotContains(t, logged, "secret-digest")
}

func TestLoad_WrongShapeIsCorrupt(t *testing.T) {
	ctx := context.Background()
	g, store, _ := newTestGateway(t)

	require.NoError(t, store.Set(ctx, KeyFavorites, []byte(`{"not":"an array"}`)))

	got := Load(ctx, g, KeyFavorites, []int{})
	assert.Empty(t, got)
	assert.Empty(t, store.Keys())
}

func TestLoad_FailedCheckIsCorrupt(t *testing.T) {
	ctx := context.Background()
	g, store, _ := newTestGateway(t)

	require.NoError(t, g.Save(ctx, KeyCart, []item{{ID: 1, Quantity: 0}}))

	positive := func(items []item) error {
		for _, it := range items {
			if it.Quantity < 1 {
				return errors.New("quantity below one")
			}
		}
		return nil
	}

	got := Load(ctx, g, KeyCart, []item{}, positive)
	assert.Empty(t, got)
	assert.Empty(t, store.Keys())
}

type failingStore struct {
	kv.Store
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, error)     { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error       { return f.err }
func (f failingStore) Delete(context.Context, string) error            { return f.err }
func (f failingStore) ReplaceAll(context.Context, map[string][]byte) error {
	return f.err
}
func (f failingStore) List(context.Context) (map[string][]byte, error) { return nil, f.err }

func TestGateway_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	g := NewGateway(failingStore{err: boom}, logging.Nop())

	assert.Equal(t, []int{7}, Load(ctx, g, KeyFavorites, []int{7}))

	err := g.Save(ctx, KeyCart, []item{})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to save cart")

	require.ErrorIs(t, g.Remove(ctx, KeyCart), boom)
	require.ErrorIs(t, g.Clear(ctx), boom)

	_, err = g.Dump(ctx)
	require.ErrorIs(t, err, boom)
}

func TestSave_EncodeError(t *testing.T) {
	g, _, _ := newTestGateway(t)
	err := g.Save(context.Background(), "bad", map[string]any{"ch": make(chan int)})
	require.ErrorContains(t, err, "failed to encode bad")
}

func TestRemove_AbsentKeyIsNoop(t *testing.T) {
	g, _, _ := newTestGateway(t)
	require.NoError(t, g.Remove(context.Background(), KeyCurrentUser))
}

func TestClearAndDump(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGateway(t)

	require.NoError(t, g.Save(ctx, KeyFavorites, []int{3, 1}))
	require.NoError(t, g.Save(ctx, KeyCurrentUser, map[string]string{"id": "u1"}))

	dump, err := g.Dump(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		KeyFavorites:   "[3,1]",
		KeyCurrentUser: `{"id":"u1"}`,
	}, dump)

	require.NoError(t, g.Clear(ctx))
	dump, err = g.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, dump)
}
