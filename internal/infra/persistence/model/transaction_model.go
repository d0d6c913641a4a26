package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionModel mirrors the 'transactions' table. PostgreSQL generates UUIDs
// via uuid_generate_v7(). Fraud annotations land in fraud_score and the
// fraud_flags JSONB column.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type TransactionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_customer_ts,priority:1"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_product_ts,priority:1"`
	Quantity      int       `gorm:"not null"`
	UnitPrice     float64   `gorm:"type:decimal(12,2);not null"`
	TotalAmount   float64   `gorm:"type:decimal(12,2);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string    `gorm:"type:varchar(50)"`
	Timestamp     time.Time `gorm:"not null;index:idx_transactions_customer_ts,priority:2;index:idx_transactions_product_ts,priority:2"`
	IPAddress     string    `gorm:"type:varchar(45)"`
	UserAgent     string    `gorm:"type:text"`
	FraudScore    float64   `gorm:"type:decimal(4,3);not null;default:0"`
	FraudFlags    []byte    `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
