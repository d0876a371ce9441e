package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists inventory records in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&inventoryRecord{})
	}
	return repo
}

type inventoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	SKUCode   string    `gorm:"column:sku_code;uniqueIndex"`
	Quantity  int       `gorm:"column:quantity;check:quantity >= 0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory" }

// Reserve issues a single conditional UPDATE so the check and the decrement
// happen atomically in the database. Zero rows affected means either the
// SKU is unknown or the remaining stock is insufficient; both are a plain
// false, never an error.
func (r *Repository) Reserve(ctx context.Context, skuCode string, quantity int) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).
		Model(&inventoryRecord{}).
		Where("sku_code = ? AND quantity >= ?", skuCode, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) FindBySKU(ctx context.Context, skuCode string) (*domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record inventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "sku_code = ?", skuCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record inventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []inventoryRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Inventory, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) Save(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("inventory item is nil")
	}
	record := inventoryRecord{ID: item.ID, SKUCode: item.SKUCode, Quantity: item.Quantity}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSKU
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&inventoryRecord{}).
		Where("id = ?", id).
		UpdateColumn("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&inventoryRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func (r inventoryRecord) toDomain() *domain.Inventory {
	return &domain.Inventory{ID: r.ID, SKUCode: r.SKUCode, Quantity: r.Quantity}
}
