package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) AddToCart(ctx context.Context, args []string) error {
	id, err := parseProductID(args, "add <product-id>")
	if err != nil {
		return err
	}
	if err := a.cart.AddItem(ctx, id); err != nil {
		return err
	}
	p, _ := a.catalog.GetProduct(id)
	a.printf("%s added to cart. Items: %d\n", p.Name, a.cart.ItemCount())
	return nil
}

func (a *App) UpdateQuantity(ctx context.Context, args []string) error {
	const usage = "qty <product-id> <+n|-n>"
	if len(args) != 2 {
		return usageError(usage)
	}
	id, err := parseProductID(args[:1], usage)
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError(usage)
	}
	if err := a.cart.UpdateQuantity(ctx, id, delta); err != nil {
		return err
	}
	return a.ShowCart(ctx, nil)
}

func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	id, err := parseProductID(args, "remove <product-id>")
	if err != nil {
		return err
	}
	if err := a.cart.RemoveItem(ctx, id); err != nil {
		return err
	}
	a.println("Removed from cart.")
	return nil
}

func (a *App) printItems(items []models.CartItem) {
	for _, it := range items {
		a.printf("  %d. %s x%d @ %s = %s\n", it.ProductID, it.Name, it.Quantity, money(it.UnitPrice), money(it.Subtotal()))
	}
}

func (a *App) ShowCart(_ context.Context, _ []string) error {
	items := a.cart.Items()
	if len(items) == 0 {
		a.println("Your cart is empty.")
		return nil
	}
	a.printItems(items)
	a.printf("Items: %d  Total: %s\n", a.cart.ItemCount(), money(a.cart.Total()))
	return nil
}

func (a *App) ClearCart(ctx context.Context, _ []string) error {
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}
	a.println("Cart cleared.")
	return nil
}

// Checkout shows the order summary. Payment is out of scope, so the cart is
// kept as is.
func (a *App) Checkout(_ context.Context, _ []string) error {
	sum, err := a.cart.Checkout()
	if err != nil {
		return err
	}
	a.println("Order summary:")
	a.printItems(sum.Items)
	a.printf("Items: %d  Total: %s\n", sum.ItemCount, money(sum.Total))
	return nil
}

func (a *App) AddFavorite(ctx context.Context, args []string) error {
	id, err := parseProductID(args, "fav <product-id>")
	if err != nil {
		return err
	}
	added, err := a.favorites.Add(ctx, id)
	if err != nil {
		return err
	}
	if added {
		a.println("Added to favorites.")
	} else {
		a.println("Already in favorites.")
	}
	return nil
}

func (a *App) RemoveFavorite(ctx context.Context, args []string) error {
	id, err := parseProductID(args, "unfav <product-id>")
	if err != nil {
		return err
	}
	if err := a.favorites.Remove(ctx, id); err != nil {
		return err
	}
	a.println("Removed from favorites.")
	return nil
}

func (a *App) ShowFavorites(_ context.Context, _ []string) error {
	ids := a.favorites.List()
	if len(ids) == 0 {
		a.println("No favorites yet.")
		return nil
	}
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := a.catalog.GetProduct(id); ok {
			products = append(products, p)
		}
	}
	a.printProducts(products)
	return nil
}
