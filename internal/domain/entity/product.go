// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable catalog item. The inventory engine reasons
// about StockQuantity but never mutates it; stock is decremented by the order
// flow on each completed transaction.
type Product struct {
	ID            uuid.UUID  `json:"id"`             // The Global Unique Identifier (GUID) for the product.
	Name          string     `json:"name"`           // Display name.
	Category      string     `json:"category"`       // Catalog category used by category-based recommendations.
	Price         float64    `json:"price"`          // Current list price.
	StockQuantity int        `json:"stock_quantity"` // Units currently on hand.
	SKU           string     `json:"sku"`            // Unique stock keeping unit.
	SupplierID    *uuid.UUID `json:"supplier_id"`    // Optional reference to the preferred supplier.
	Supplier      *Supplier  `json:"supplier,omitempty"` // Eager-loaded supplier when requested through the facade.
	CreatedAt     time.Time  `json:"created_at"`     // Timestamp of when this record was created.
	UpdatedAt     time.Time  `json:"updated_at"`     // Timestamp of the last modification.
}

// InStock reports whether the product can currently be recommended or sold.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
