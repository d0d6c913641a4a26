// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertType enumerates the categories of operational alerts.
type AlertType string

// Alert types.
const (
	AlertTypeFraud           AlertType = "fraud"
	AlertTypeLowStock        AlertType = "low_stock"
	AlertTypeHighValue       AlertType = "high_value"
	AlertTypeUnusualActivity AlertType = "unusual_activity"
	AlertTypeCustom          AlertType = "custom"
)

// AlertSeverity enumerates alert severities from least to most urgent.
type AlertSeverity string

// Alert severities.
const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// Alert represents an operational alert raised by an analytical engine.
// The core only creates alerts; read/resolve lifecycle belongs to the
// alerting collaborator.
type Alert struct {
	ID            uuid.UUID      `json:"id"`             // The Global Unique Identifier (GUID) for the alert.
	Type          AlertType      `json:"type"`           // Alert category.
	Severity      AlertSeverity  `json:"severity"`       // How urgent the alert is.
	Title         string         `json:"title"`          // Short human-readable headline.
	Message       string         `json:"message"`        // Full alert message.
	TransactionID *uuid.UUID     `json:"transaction_id"` // Optional linked transaction.
	CustomerID    *uuid.UUID     `json:"customer_id"`    // Optional linked customer.
	ProductID     *uuid.UUID     `json:"product_id"`     // Optional linked product.
	IsRead        bool           `json:"is_read"`        // Whether an operator has seen the alert.
	Resolved      bool           `json:"resolved"`       // Whether the alert has been resolved.
	Metadata      map[string]any `json:"metadata"`       // Structured context persisted alongside the alert.
	CreatedAt     time.Time      `json:"created_at"`     // Timestamp of when this record was created.
	UpdatedAt     time.Time      `json:"updated_at"`     // Timestamp of the last modification.
}
