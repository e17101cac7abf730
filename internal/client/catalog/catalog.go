// Package catalog holds the read-only product list the cart and favorites
// look products up in.
package catalog

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Sort orders accepted by Sort.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// GenreAll disables genre filtering.
const GenreAll = "all"

// Static is an in-memory catalog in display order.
type Static struct {
	products []models.Product
}

func NewStatic(products []models.Product) *Static {
	return &Static{products: slices.Clone(products)}
}

// Default returns the storefront's vinyl catalog.
func Default() *Static {
	return NewStatic([]models.Product{
		{
			ID: 1, Name: "Swimming", Artist: "Mac Miller", Genre: "Hip Hop",
			Price: 39.99, Image: "images/swimming.jpg", Year: 2018,
			Description: "Mac Miller's fifth studio album, released in 2018.",
		},
		{
			ID: 2, Name: "Hybrid Theory", Artist: "Linkin Park", Genre: "Nu Metal",
			Price: 44.99, Image: "images/hybrid-theory.jpg", Year: 2000,
			Description: "The Linkin Park debut that made them famous worldwide.",
		},
		{
			ID: 3, Name: "Circles", Artist: "Mac Miller", Genre: "Hip Hop",
			Price: 42.99, Image: "images/circles.jpg", Year: 2020,
			Description: "Mac Miller's last album, completed and released posthumously in 2020.",
		},
		{
			ID: 4, Name: "Meteora", Artist: "Linkin Park", Genre: "Nu Metal",
			Price: 46.99, Image: "images/meteora.jpg", Year: 2003,
			Description: "The second Linkin Park studio album, released in 2003.",
		},
	})
}

// GetProduct returns the product with the given id.
func (c *Static) GetProduct(id models.ProductID) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (c *Static) All() []models.Product {
	return slices.Clone(c.products)
}

// Search matches query case-insensitively against name, artist, genre and
// description. An empty query matches everything.
func (c *Static) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Product{}
	for _, p := range c.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Artist), q) ||
			strings.Contains(strings.ToLower(p.Genre), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByGenre returns products whose genre contains genre, ignoring case.
// GenreAll or an empty genre returns the whole catalog.
func (c *Static) FilterByGenre(genre string) []models.Product {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" || g == GenreAll {
		return c.All()
	}
	out := []models.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Genre), g) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy of products. Unknown orders keep the input order.
func Sort(products []models.Product, by string) []models.Product {
	out := slices.Clone(products)
	var cmp func(a, b models.Product) int
	switch by {
	case SortPriceAsc:
		cmp = func(a, b models.Product) int { return comparePrice(a, b) }
	case SortPriceDesc:
		cmp = func(a, b models.Product) int { return comparePrice(b, a) }
	case SortNameAsc:
		cmp = func(a, b models.Product) int { return compareName(a, b) }
	case SortNameDesc:
		cmp = func(a, b models.Product) int { return compareName(b, a) }
	default:
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func comparePrice(a, b models.Product) int {
	switch {
	case a.Price < b.Price:
		return -1
	case a.Price > b.Price:
		return 1
	}
	return 0
}

func compareName(a, b models.Product) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
