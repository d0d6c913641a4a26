package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Stock is decremented by the
// order flow; the inventory engine only reads it.
type ProductModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Category      string     `gorm:"type:varchar(100);not null;index"`
	Price         float64    `gorm:"type:decimal(12,2);not null"`
	StockQuantity int        `gorm:"not null;default:0;index"`
	SKU           string     `gorm:"type:varchar(100);unique;not null"`
	SupplierID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
