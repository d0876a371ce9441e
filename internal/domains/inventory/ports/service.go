package ports

import (
	"context"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
)

// Service exposes inventory use cases to adapters.
type Service interface {
	// IsInStock reports whether quantity units of skuCode are available
	// and, when they are, reserves them by decrementing the record.
	IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error)
	List(ctx context.Context) ([]*domain.Inventory, error)
	Add(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Inventory, error)
	Delete(ctx context.Context, id int64) error
	GetBySKU(ctx context.Context, skuCode string) (*domain.Inventory, error)
}
