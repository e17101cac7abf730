package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites_AddRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fav := f.favorites()

	added, err := fav.Add(ctx, 3)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = fav.Add(ctx, 1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = fav.Add(ctx, 3)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []models.ProductID{3, 1}, fav.List())
	assert.True(t, fav.Contains(1))
	assert.JSONEq(t, `[3,1]`, string(f.raw(t, persistence.KeyFavorites)))

	require.NoError(t, fav.Remove(ctx, 3))
	require.NoError(t, fav.Remove(ctx, 3))
	assert.Equal(t, []models.ProductID{1}, fav.List())
	assert.False(t, fav.Contains(3))
}

func TestFavorites_UnknownProduct(t *testing.T) {
	fav := newFixture(t).favorites()
	_, err := fav.Add(context.Background(), 77)
	require.ErrorIs(t, err, common.ErrorProductNotFound)
	assert.Empty(t, fav.List())
}

func TestFavorites_HydrateDropsRepeats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Set(ctx, persistence.KeyFavorites, []byte(`[2,4,2,1]`)))

	fav := f.favorites()
	fav.Hydrate(ctx)
	assert.Equal(t, []models.ProductID{2, 4, 1}, fav.List())
}

func TestFavorites_HydrateCorrupt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Set(ctx, persistence.KeyFavorites, []byte(`{"a":1}`)))

	fav := f.favorites()
	fav.Hydrate(ctx)
	assert.Empty(t, fav.List())
}

func TestFavorites_FailedSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fav := f.favorites()
	_, err := fav.Add(ctx, 1)
	require.NoError(t, err)

	f.store.failWrites = true
	_, err = fav.Add(ctx, 2)
	require.ErrorIs(t, err, errDiskFull)
	require.ErrorIs(t, fav.Remove(ctx, 1), errDiskFull)
	assert.Equal(t, []models.ProductID{1}, fav.List())
}
