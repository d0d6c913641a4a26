// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is a domain-specific error returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines read-only customer queries. The analytics core
// never writes customer records.
type CustomerRepository interface {
	// FindByID retrieves a single customer by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindByIDWithTransactions retrieves a customer with their full
	// transaction history eager-loaded, ordered by timestamp ascending.
	FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindAllWithTransactions retrieves the whole customer population with
	// transaction histories eager-loaded. Intended for periodic batch
	// analytics (RFM, churn), not per-request hot paths.
	FindAllWithTransactions(ctx context.Context) ([]*entity.Customer, error)
}
