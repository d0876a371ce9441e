package application

import (
	"context"
	"errors"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

// Service orchestrates inventory use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// IsInStock checks availability and reserves the requested quantity in one
// step. A non-positive quantity and an unknown SKU both yield false rather
// than an error: they signal "cannot fulfill", not a fault.
func (s *Service) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	return s.repo.Reserve(ctx, skuCode, quantity)
}

func (s *Service) List(ctx context.Context) ([]*domain.Inventory, error) {
	return s.repo.List(ctx)
}

func (s *Service) Add(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error) {
	if item == nil {
		return nil, errors.New("inventory item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, item)
}

// UpdateQuantity sets an absolute quantity by record id.
func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Inventory, error) {
	if quantity < 0 {
		return nil, mapError(domain.ErrNegativeQuantity)
	}
	return s.repo.UpdateQuantity(ctx, id, quantity)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetBySKU(ctx context.Context, skuCode string) (*domain.Inventory, error) {
	return s.repo.FindBySKU(ctx, skuCode)
}

var _ ports.Service = (*Service)(nil)
