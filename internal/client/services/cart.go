// Package services holds the storefront's stateful components: the cart, the
// favorites set, the user directory and the session. Each one owns its state
// in memory, hydrates it from the persistence gateway at startup and writes
// the full state back on every mutation.
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

// ProductCatalog is the read-only product lookup the cart and favorites use.
type ProductCatalog interface {
	GetProduct(id models.ProductID) (models.Product, bool)
}

// CartStore owns the cart line items. Items keep insertion order, product ids
// are unique and every quantity is at least 1.
type CartStore struct {
	gw      *persistence.Gateway
	catalog ProductCatalog
	log     logging.Logger
	items   []models.CartItem
}

func NewCartStore(gw *persistence.Gateway, catalog ProductCatalog, log logging.Logger) *CartStore {
	if log == nil {
		log = logging.Nop()
	}
	return &CartStore{
		gw:      gw,
		catalog: catalog,
		log:     log.With("component", "cart"),
		items:   []models.CartItem{},
	}
}

// Hydrate replaces the in-memory cart with the persisted one. A missing or
// corrupt record yields an empty cart.
func (c *CartStore) Hydrate(ctx context.Context) {
	c.items = persistence.Load(ctx, c.gw, persistence.KeyCart, []models.CartItem{}, validCart)
	if c.items == nil {
		c.items = []models.CartItem{}
	}
	c.log.Debug(ctx, "cart hydrated", "items", len(c.items))
}

func validCart(items []models.CartItem) error {
	seen := make(map[models.ProductID]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.ProductID]; dup {
			return fmt.Errorf("duplicate item %d", it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}

func (c *CartStore) index(id models.ProductID) int {
	return slices.IndexFunc(c.items, func(it models.CartItem) bool { return it.ProductID == id })
}

// commit saves next and only then makes it the current cart.
func (c *CartStore) commit(ctx context.Context, next []models.CartItem) error {
	if err := c.gw.Save(ctx, persistence.KeyCart, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// AddItem adds one unit of the product. A new line copies the catalog name,
// price and image as they are now; later catalog changes do not touch it.
func (c *CartStore) AddItem(ctx context.Context, id models.ProductID) error {
	p, ok := c.catalog.GetProduct(id)
	if !ok {
		return fmt.Errorf("%w: %d", common.ErrorProductNotFound, id)
	}

	next := slices.Clone(c.items)
	if i := c.index(id); i >= 0 {
		next[i].Quantity = addQuantity(next[i].Quantity, 1)
	} else {
		next = append(next, models.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Image:     p.Image,
			Quantity:  1,
		})
	}

	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.log.Info(ctx, "item added", "product", id)
	return nil
}

// UpdateQuantity applies delta to the item's quantity. A result of zero or
// less removes the item; a result above models.MaxQuantity is clamped to it.
// Unknown products are ignored.
func (c *CartStore) UpdateQuantity(ctx context.Context, id models.ProductID, delta int) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}

	next := slices.Clone(c.items)
	if q := addQuantity(next[i].Quantity, delta); q <= 0 {
		next = slices.Delete(next, i, i+1)
	} else {
		next[i].Quantity = q
	}
	return c.commit(ctx, next)
}

// addQuantity adds delta to q and clamps the result to models.MaxQuantity.
func addQuantity(q, delta int) int {
	if delta > 0 && q > models.MaxQuantity-delta {
		return models.MaxQuantity
	}
	return q + delta
}

// RemoveItem drops the product's line. Removing an absent product changes
// nothing and writes nothing.
func (c *CartStore) RemoveItem(ctx context.Context, id models.ProductID) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(c.items), i, i+1)
	return c.commit(ctx, next)
}

func (c *CartStore) Clear(ctx context.Context) error {
	return c.commit(ctx, []models.CartItem{})
}

// Items returns a copy of the cart in display order.
func (c *CartStore) Items() []models.CartItem {
	return slices.Clone(c.items)
}

// Total is the sum of price times quantity. It is summed in cents so that
// 39.99 + 2 x 44.99 is exactly 129.97.
func (c *CartStore) Total() float64 {
	var cents int64
	for _, it := range c.items {
		cents += it.Cents() * int64(it.Quantity)
	}
	return float64(cents) / 100
}

// ItemCount is the sum of quantities.
func (c *CartStore) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Checkout summarises a non-empty cart. It does not clear the cart.
func (c *CartStore) Checkout() (models.CheckoutSummary, error) {
	if len(c.items) == 0 {
		return models.CheckoutSummary{}, common.ErrCartEmpty
	}
	return models.CheckoutSummary{
		Items:     c.Items(),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}, nil
}
