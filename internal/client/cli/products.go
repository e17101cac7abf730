package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) printProducts(products []models.Product) {
	if len(products) == 0 {
		a.println("No products found.")
		return
	}
	for _, p := range products {
		mark := " "
		if a.favorites.Contains(p.ID) {
			mark = "*"
		}
		a.printf("%s %d. %s - %s (%s, %d) %s\n", mark, p.ID, p.Name, p.Artist, p.Genre, p.Year, money(p.Price))
	}
}

func (a *App) Products(_ context.Context, _ []string) error {
	a.printProducts(a.catalog.All())
	return nil
}

func (a *App) Search(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("search <text>")
	}
	a.printProducts(a.catalog.Search(strings.Join(args, " ")))
	return nil
}

func (a *App) Genre(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("genre <genre|all>")
	}
	a.printProducts(a.catalog.FilterByGenre(strings.Join(args, " ")))
	return nil
}

func (a *App) Sort(_ context.Context, args []string) error {
	const usage = "sort <price-asc|price-desc|name-asc|name-desc>"
	if len(args) != 1 {
		return usageError(usage)
	}
	switch args[0] {
	case catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortNameAsc, catalog.SortNameDesc:
	default:
		return usageError(usage)
	}
	a.printProducts(catalog.Sort(a.catalog.All(), args[0]))
	return nil
}
