package ports

import (
	"context"

	"github.com/IT21177828/CTSE-Project/internal/domains/products/domain"
)

// Service exposes the catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
