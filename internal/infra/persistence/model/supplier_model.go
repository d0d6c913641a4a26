package model

import (
	"time"

	"github.com/google/uuid"
)

// SupplierModel mirrors the 'suppliers' table.
type SupplierModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name                string    `gorm:"type:varchar(255);not null"`
	ReliabilityScore    float64   `gorm:"type:decimal(4,3);not null;default:0"`
	AverageDeliveryDays int       `gorm:"not null;default:0"`
	PaymentTerms        string    `gorm:"type:varchar(20)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupplierModel) TableName() string {
	return "suppliers"
}
