package ports

import (
	"context"
	"errors"

	"github.com/IT21177828/CTSE-Project/internal/domains/products/domain"
)

// ErrNotFound reports that no product matches the identifier.
var ErrNotFound = errors.New("product not found")

// Repository abstracts product persistence.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
