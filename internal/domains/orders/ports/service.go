package ports

import (
	"context"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
)

// PlaceOrderInput carries the inbound order request, including the contact
// fields forwarded onto the OrderPlaced event.
type PlaceOrderInput struct {
	SKUCode   string
	Quantity  int
	Price     float64
	Email     string
	FirstName string
	LastName  string
}

// Service exposes the order placement use case to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
