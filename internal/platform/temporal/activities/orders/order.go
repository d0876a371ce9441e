package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	ordersports "github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the full placement flow as a single activity.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// OutOfStockErrorType marks the deterministic stock rejection on the
	// application error so callers can translate it back after the trip
	// through Temporal's error serialization.
	OutOfStockErrorType = "OutOfStock"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder reserves stock, persists the order, and publishes the event.
// The whole flow runs as one activity: the reservation step is not
// idempotent, so splitting it into retryable pieces would double-reserve.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*OrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "sku", input.SKUCode)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "sku", input.SKUCode, "quantity", input.Quantity)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		var outOfStock *ordersapp.OutOfStockError
		if errors.As(err, &outOfStock) {
			logger.Info("PlaceOrder activity rejected, insufficient stock", "sku", outOfStock.SKUCode)
			return nil, temporal.NewNonRetryableApplicationError(outOfStock.Error(), OutOfStockErrorType, err)
		}
		logger.Error("PlaceOrder activity failed", "sku", input.SKUCode, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderNumber", order.OrderNumber)
	return &OrderResult{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		SKUCode:     order.SKUCode,
		Price:       order.Price,
		Quantity:    order.Quantity,
	}, nil
}

// OrderResult is the serializable projection of a placed order returned
// through Temporal payloads.
type OrderResult struct {
	ID          int64   `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	SKUCode     string  `json:"skuCode"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
