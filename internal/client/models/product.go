// Package models defines the storefront records and their persisted JSON shapes.
package models

// ProductID identifies a catalog product. Cart items and favorites refer to
// products by id only.
type ProductID int64

// Product is a catalog entry. The cart snapshots Name, Price and Image when an
// item is first added.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Artist      string    `json:"artist"`
	Genre       string    `json:"genre"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
}
