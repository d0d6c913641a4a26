package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertModel mirrors the 'alerts' table. The analytics core only inserts
// rows; is_read and resolved are flipped by the alerting collaborator.
type AlertModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Type          string     `gorm:"type:varchar(30);not null;index"`
	Severity      string     `gorm:"type:varchar(10);not null;index"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Message       string     `gorm:"type:text;not null"`
	TransactionID *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	ProductID     *uuid.UUID `gorm:"type:uuid;index"`
	IsRead        bool       `gorm:"not null;default:false"`
	Resolved      bool       `gorm:"not null;default:false"`
	Metadata      []byte     `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AlertModel) TableName() string {
	return "alerts"
}
