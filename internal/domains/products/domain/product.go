// Package domain holds the product catalog model.
package domain

import "errors"

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price cannot be negative")
)

// Product is a catalog entry. Stock levels live in the inventory context,
// keyed by SKU, not here.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
}

// Validate checks the invariants a catalog entry must satisfy.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
