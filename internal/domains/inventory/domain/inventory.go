package domain

import "errors"

var (
	ErrEmptySKU         = errors.New("sku code must not be empty")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Inventory tracks the available quantity for a single SKU. The quantity
// never goes below zero; reservations are rejected instead.
type Inventory struct {
	ID       int64
	SKUCode  string
	Quantity int
}

// NewInventory validates and constructs an inventory record.
func NewInventory(id int64, skuCode string, quantity int) (*Inventory, error) {
	item := &Inventory{ID: id, SKUCode: skuCode, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate enforces invariants on the record.
func (i *Inventory) Validate() error {
	if i.SKUCode == "" {
		return ErrEmptySKU
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
