package application

import "fmt"

// OutOfStockError is the deterministic business rejection: the inventory
// service reported the requested quantity cannot be fulfilled. It names the
// offending SKU and maps to a 400 at the HTTP boundary.
type OutOfStockError struct {
	SKUCode string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Product with SKU code '%s' is not in stock.", e.SKUCode)
}

// PublishError reports that the event channel rejected the OrderPlaced
// event after the order was already durably persisted. The order record is
// kept; no notification will be sent for it and there is no automatic
// reconciliation.
type PublishError struct {
	OrderNumber string
	Err         error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("order %s persisted but event publication failed: %v", e.OrderNumber, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
