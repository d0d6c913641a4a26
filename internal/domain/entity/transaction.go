// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus enumerates the lifecycle states of a transaction.
type TransactionStatus string

// Transaction status values. Only completed transactions contribute to
// analytics aggregates; flagged transactions are held for manual review.
const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
	TransactionStatusFlagged   TransactionStatus = "flagged"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents a single immutable purchase record. It is created
// once by the order-placement flow; the fraud engine annotates FraudScore and
// FraudFlags exactly once after creation, and nothing else mutates it.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`             // The Global Unique Identifier (GUID) for the transaction.
	CustomerID    uuid.UUID         `json:"customer_id"`    // The ID of the customer who placed the order.
	ProductID     uuid.UUID         `json:"product_id"`     // The ID of the purchased product.
	Quantity      int               `json:"quantity"`       // Number of units purchased.
	UnitPrice     float64           `json:"unit_price"`     // Price per unit at purchase time.
	TotalAmount   float64           `json:"total_amount"`   // Total charged amount (quantity * unit price).
	Status        TransactionStatus `json:"status"`         // Current lifecycle status.
	PaymentMethod string            `json:"payment_method"` // Payment method label (e.g., "credit_card", "paypal").
	Timestamp     time.Time         `json:"timestamp"`      // When the order was placed.
	IPAddress     string            `json:"ip_address"`     // Client network address captured at checkout.
	UserAgent     string            `json:"user_agent"`     // Client user agent captured at checkout.
	FraudScore    float64           `json:"fraud_score"`    // Aggregated fraud risk in [0, 1], written once by the fraud engine.
	FraudFlags    []FraudFlag       `json:"fraud_flags"`    // Ordered list of fraud signals that fired during scoring.
	CreatedAt     time.Time         `json:"created_at"`     // Timestamp of when this record was created.
	UpdatedAt     time.Time         `json:"updated_at"`     // Timestamp of the last modification.
}

// IsCompleted reports whether the transaction counts toward analytics.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}
