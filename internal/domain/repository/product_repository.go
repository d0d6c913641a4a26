// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrSupplierNotFound is returned when a supplier is not found.
	ErrSupplierNotFound = errors.New("supplier not found")
)

// ProductRepository defines read-only catalog queries.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID, optionally
	// eager-loading its supplier.
	FindByID(ctx context.Context, id uuid.UUID, withSupplier bool) (*entity.Product, error)

	// FindByIDs retrieves the products with the given IDs. Missing IDs are
	// silently skipped; the result order is unspecified.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// FindAll retrieves the full catalog.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindLowStock retrieves products with stock at or below the threshold,
	// suppliers eager-loaded. Input to reorder suggestion generation.
	FindLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)

	// FindInStockByCategories retrieves in-stock products belonging to any
	// of the given categories, ordered by price descending.
	FindInStockByCategories(ctx context.Context, categories []string) ([]*entity.Product, error)
}

// SupplierRepository defines read-only supplier queries.
type SupplierRepository interface {
	// FindByID retrieves a single supplier by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)

	// FindAll retrieves all suppliers.
	FindAll(ctx context.Context) ([]*entity.Supplier, error)
}
