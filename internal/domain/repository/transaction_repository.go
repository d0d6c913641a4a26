// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is a domain-specific error returned when a transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository is the read-side facade the analytical engines query.
// Apart from UpdateFraudAnnotation, every method is a read against immutable
// transaction snapshots.
type TransactionRepository interface {
	// FindByID retrieves a single transaction by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByCustomerInWindow retrieves a customer's transactions whose
	// timestamp falls in [start, end], ordered by timestamp ascending.
	FindByCustomerInWindow(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// FindByProductInWindow retrieves a product's completed transactions
	// whose timestamp falls in [start, end], ordered by timestamp ascending.
	FindByProductInWindow(ctx context.Context, productID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// CountByCustomerSince counts transactions by one customer with
	// timestamp >= since, regardless of status. Used by the velocity check.
	CountByCustomerSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int64, error)

	// BatchSalesByProduct aggregates completed-transaction units sold per
	// product since the given time, for all requested products in a single
	// query. Products with no sales are absent from the result map.
	BatchSalesByProduct(ctx context.Context, productIDs []uuid.UUID, since time.Time) (map[uuid.UUID]int, error)

	// UpdateFraudAnnotation persists the fraud score and flags onto a
	// transaction. This is the only mutation the analytics core performs,
	// exactly once per transaction immediately after scoring.
	UpdateFraudAnnotation(ctx context.Context, id uuid.UUID, score float64, flags []entity.FraudFlag) error
}
