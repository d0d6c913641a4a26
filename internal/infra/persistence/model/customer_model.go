package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table. TotalSpent and RiskScore are
// written by the order flow and the external risk pipeline; this service only
// reads them.
type CustomerModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email            string    `gorm:"type:varchar(255);unique;not null"`
	FirstName        string    `gorm:"type:varchar(100)"`
	LastName         string    `gorm:"type:varchar(100)"`
	RegistrationDate time.Time `gorm:"not null"`
	TotalSpent       float64   `gorm:"type:decimal(14,2);not null;default:0"`
	RiskScore        float64   `gorm:"type:decimal(4,3);not null;default:0"`
	LoyaltyTier      string    `gorm:"type:varchar(20);not null;default:'none'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Transactions []TransactionModel `gorm:"foreignKey:CustomerID"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
