package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory inventory persistence adapter.
type Repository struct {
	mu     sync.Mutex
	items  map[int64]*domain.Inventory
	bySKU  map[string]int64
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Inventory{}, bySKU: map[string]int64{}}
}

// Reserve holds the lock across the read-modify-write so concurrent
// reservations on the same SKU cannot both observe sufficient stock.
func (r *Repository) Reserve(_ context.Context, skuCode string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySKU[skuCode]
	if !ok {
		return false, nil
	}
	item := r.items[id]
	if item.Quantity < quantity {
		return false, nil
	}
	item.Quantity -= quantity
	return true, nil
}

func (r *Repository) FindBySKU(_ context.Context, skuCode string) (*domain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySKU[skuCode]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.items[id]
	return &clone, nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Inventory, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) Save(_ context.Context, item *domain.Inventory) (*domain.Inventory, error) {
	if item == nil {
		return nil, errors.New("inventory item is nil")
	}
	clone := *item
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.bySKU[clone.SKUCode]; ok && existing != clone.ID {
		return nil, ports.ErrDuplicateSKU
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.items[clone.ID] = &clone
	r.bySKU[clone.SKUCode] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) UpdateQuantity(_ context.Context, id int64, quantity int) (*domain.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	item.Quantity = quantity
	clone := *item
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.bySKU, item.SKUCode)
	delete(r.items, id)
	return nil
}
