// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment terms recognized by supplier cost scoring. Unknown terms fall back
// to the Net 30 cost score.
const (
	PaymentTermsPrepaid = "Prepaid"
	PaymentTermsNet30   = "Net 30"
	PaymentTermsNet45   = "Net 45"
	PaymentTermsNet60   = "Net 60"
)

// Supplier represents a product supplier. Read-only input to supplier
// ranking and reorder lead-time estimation.
type Supplier struct {
	ID                  uuid.UUID `json:"id"`                    // The Global Unique Identifier (GUID) for the supplier.
	Name                string    `json:"name"`                  // Company name.
	ReliabilityScore    float64   `json:"reliability_score"`     // Historical fulfillment reliability in [0, 1].
	AverageDeliveryDays int       `json:"average_delivery_days"` // Mean lead time in days.
	PaymentTerms        string    `json:"payment_terms"`         // Negotiated payment terms, one of the PaymentTerms constants.
	CreatedAt           time.Time `json:"created_at"`            // Timestamp of when this record was created.
	UpdatedAt           time.Time `json:"updated_at"`            // Timestamp of the last modification.
}
