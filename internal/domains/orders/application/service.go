package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
)

// Service runs the order placement saga: reserve stock at the inventory
// service, persist the order, publish OrderPlaced. Each step only happens
// after the previous one succeeded; in particular no event is ever emitted
// for an order that was not durably persisted. There is no compensation
// path: a publish failure after persistence leaves a durable order with no
// notification, which is preferred over losing the record.
type Service struct {
	repo   ports.Repository
	stock  ports.StockChecker
	events ports.EventPublisher
}

func NewService(repo ports.Repository, stock ports.StockChecker, events ports.EventPublisher) *Service {
	return &Service{repo: repo, stock: stock, events: events}
}

func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	inStock, err := s.stock.CheckAndReserve(ctx, input.SKUCode, input.Quantity)
	if err != nil {
		// Transport failure, not a stock answer. Must not be treated
		// as out-of-stock.
		return nil, fmt.Errorf("stock check for sku %s: %w", input.SKUCode, err)
	}
	if !inStock {
		return nil, &OutOfStockError{SKUCode: input.SKUCode}
	}

	order := &domain.Order{
		OrderNumber: uuid.NewString(),
		SKUCode:     input.SKUCode,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist order %s: %w", order.OrderNumber, err)
	}

	event := domain.OrderPlaced{
		OrderNumber: saved.OrderNumber,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
	}
	if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
		return nil, &PublishError{OrderNumber: saved.OrderNumber, Err: err}
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
