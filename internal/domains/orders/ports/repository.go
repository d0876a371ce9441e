package ports

import (
	"context"
	"errors"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order records. Create assigns the storage id; the
// hot path never updates or deletes.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
