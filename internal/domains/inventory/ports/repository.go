package ports

import (
	"context"
	"errors"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
)

var (
	ErrNotFound     = errors.New("inventory item not found")
	ErrDuplicateSKU = errors.New("inventory item already exists for sku")
)

// Repository persists inventory records.
//
// Reserve executes the check-and-decrement as a single atomic unit: under
// concurrent reservations for the same SKU the sum of granted quantities
// never exceeds what was available. Implementations must not split the
// read and the conditional write. A false result covers both an unknown
// SKU and insufficient stock; neither mutates the record.
type Repository interface {
	Reserve(ctx context.Context, skuCode string, quantity int) (bool, error)
	FindBySKU(ctx context.Context, skuCode string) (*domain.Inventory, error)
	FindByID(ctx context.Context, id int64) (*domain.Inventory, error)
	List(ctx context.Context) ([]*domain.Inventory, error)
	Save(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Inventory, error)
	Delete(ctx context.Context, id int64) error
}
