package models

import (
	"fmt"
	"math"
)

// MaxQuantity caps a single cart line so totals stay within int64 cents.
const MaxQuantity = 1_000_000

// CartItem is one line of the cart, stored under the "cart" key as
// {id, name, price, image, quantity}.
type CartItem struct {
	ProductID ProductID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
}

// Cents returns the unit price in whole cents.
func (i CartItem) Cents() int64 {
	return int64(math.Round(i.UnitPrice * 100))
}

// Subtotal is UnitPrice times Quantity, computed in cents.
func (i CartItem) Subtotal() float64 {
	return float64(i.Cents()*int64(i.Quantity)) / 100
}

// Validate rejects items that cannot appear in a cart.
func (i CartItem) Validate() error {
	if i.Quantity < 1 {
		return fmt.Errorf("item %d: quantity %d below 1", i.ProductID, i.Quantity)
	}
	if i.Quantity > MaxQuantity {
		return fmt.Errorf("item %d: quantity %d above %d", i.ProductID, i.Quantity, MaxQuantity)
	}
	if i.UnitPrice < 0 {
		return fmt.Errorf("item %d: negative price", i.ProductID)
	}
	return nil
}

// CheckoutSummary is what the checkout step shows before payment.
type CheckoutSummary struct {
	Items     []CartItem
	ItemCount int
	Total     float64
}
