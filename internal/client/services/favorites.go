package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// FavoritesSet is a set of product ids kept in the order they were added.
type FavoritesSet struct {
	gw      *persistence.Gateway
	catalog ProductCatalog
	log     logging.Logger
	ids     []models.ProductID
}

func NewFavoritesSet(gw *persistence.Gateway, catalog ProductCatalog, log logging.Logger) *FavoritesSet {
	if log == nil {
		log = logging.Nop()
	}
	return &FavoritesSet{
		gw:      gw,
		catalog: catalog,
		log:     log.With("component", "favorites"),
		ids:     []models.ProductID{},
	}
}

// Hydrate loads the persisted favorites. Repeated ids keep their first
// position.
func (f *FavoritesSet) Hydrate(ctx context.Context) {
	stored := persistence.Load(ctx, f.gw, persistence.KeyFavorites, []models.ProductID{})
	ids := make([]models.ProductID, 0, len(stored))
	for _, id := range stored {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	f.ids = ids
}

// Add marks the product as a favorite. added is false when it already was one,
// in which case nothing is written.
func (f *FavoritesSet) Add(ctx context.Context, id models.ProductID) (added bool, err error) {
	if _, ok := f.catalog.GetProduct(id); !ok {
		return false, fmt.Errorf("%w: %d", common.ErrorProductNotFound, id)
	}
	if f.Contains(id) {
		return false, nil
	}

	next := append(slices.Clone(f.ids), id)
	if err := f.gw.Save(ctx, persistence.KeyFavorites, next); err != nil {
		return false, err
	}
	f.ids = next
	return true, nil
}

// Remove unmarks the product. Absent ids are a no-op.
func (f *FavoritesSet) Remove(ctx context.Context, id models.ProductID) error {
	i := slices.Index(f.ids, id)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(f.ids), i, i+1)
	if err := f.gw.Save(ctx, persistence.KeyFavorites, next); err != nil {
		return err
	}
	f.ids = next
	return nil
}

func (f *FavoritesSet) Contains(id models.ProductID) bool {
	return slices.Contains(f.ids, id)
}

func (f *FavoritesSet) List() []models.ProductID {
	return slices.Clone(f.ids)
}
