package ports

import (
	"context"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs the order placement saga, either inline or on a
// durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
