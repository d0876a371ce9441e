package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate when services share a database in dev setups.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&inventoryRecord{},
		&orderRecord{},
		&productRecord{},
	)
}

// Inventory schema mirrors the inventory Postgres adapter.
type inventoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	SKUCode   string    `gorm:"column:sku_code;uniqueIndex"`
	Quantity  int       `gorm:"column:quantity;check:quantity >= 0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory" }

// Order schema mirrors the orders Postgres adapter. Rows are append-only.
type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	OrderNumber string    `gorm:"column:order_number;uniqueIndex"`
	SKUCode     string    `gorm:"column:sku_code;index"`
	Price       float64   `gorm:"column:price"`
	Quantity    int       `gorm:"column:quantity"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;index"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }
