// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// transactionRepository implements the repository.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByID retrieves a single transaction by its unique ID.
func (repo *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txM model.TransactionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&txM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction by ID")
	}

	return toTransactionDomain(&txM), nil
}

// FindByCustomerInWindow retrieves a customer's transactions inside [start, end],
// ordered by timestamp ascending.
func (repo *transactionRepository) FindByCustomerInWindow(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var txModels []*model.TransactionModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ? AND timestamp >= ? AND timestamp <= ?", customerID, start, end).
		Order("timestamp ASC").
		Find(&txModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find transactions by customer")
	}

	return toTransactionDomainSlice(txModels), nil
}

// FindByProductInWindow retrieves a product's completed transactions inside
// [start, end], ordered by timestamp ascending. A zero start means unbounded.
func (repo *transactionRepository) FindByProductInWindow(ctx context.Context, productID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var txModels []*model.TransactionModel

	query := repo.db.WithContext(ctx).
		Where("product_id = ? AND status = ? AND timestamp <= ?", productID, string(entity.TransactionStatusCompleted), end)
	if !start.IsZero() {
		query = query.Where("timestamp >= ?", start)
	}

	if err := query.
		Order("timestamp ASC").
		Find(&txModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find transactions by product")
	}

	return toTransactionDomainSlice(txModels), nil
}

// CountByCustomerSince counts one customer's transactions with timestamp >= since.
func (repo *transactionRepository) CountByCustomerSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("customer_id = ? AND timestamp >= ?", customerID, since).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count transactions by customer")
	}

	return count, nil
}

// productSalesRow scans the grouped aggregate of BatchSalesByProduct.
type productSalesRow struct {
	ProductID uuid.UUID
	UnitsSold int
}

// BatchSalesByProduct aggregates completed-transaction units sold per product
// since the given time, for all requested products in a single grouped query.
func (repo *transactionRepository) BatchSalesByProduct(ctx context.Context, productIDs []uuid.UUID, since time.Time) (map[uuid.UUID]int, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	var rows []productSalesRow

	query := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("product_id, SUM(quantity) AS units_sold").
		Where("product_id IN ? AND status = ?", productIDs, string(entity.TransactionStatusCompleted))
	if !since.IsZero() {
		query = query.Where("timestamp >= ?", since)
	}

	if err := query.
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate sales by product")
	}

	sales := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		sales[row.ProductID] = row.UnitsSold
	}

	return sales, nil
}

// UpdateFraudAnnotation persists the fraud score and flags onto a transaction.
func (repo *transactionRepository) UpdateFraudAnnotation(ctx context.Context, id uuid.UUID, score float64, flags []entity.FraudFlag) error {
	flagsJSON, err := marshalFraudFlags(flags)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"fraud_score": score,
			"fraud_flags": flagsJSON,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update fraud annotation")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTransactionNotFound
	}

	return nil
}

// toTransactionDomain maps a persistence model back to a pure domain entity.
func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	tx := &entity.Transaction{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		ProductID:     data.ProductID,
		Quantity:      data.Quantity,
		UnitPrice:     data.UnitPrice,
		TotalAmount:   data.TotalAmount,
		Status:        entity.TransactionStatus(data.Status),
		PaymentMethod: data.PaymentMethod,
		Timestamp:     data.Timestamp,
		IPAddress:     data.IPAddress,
		UserAgent:     data.UserAgent,
		FraudScore:    data.FraudScore,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}

	if len(data.FraudFlags) > 0 {
		// A malformed payload is impossible through this repository; ignore
		// rather than fail the read.
		_ = json.Unmarshal(data.FraudFlags, &tx.FraudFlags)
	}

	return tx
}

func toTransactionDomainSlice(data []*model.TransactionModel) []*entity.Transaction {
	txs := make([]*entity.Transaction, 0, len(data))
	for _, txM := range data {
		txs = append(txs, toTransactionDomain(txM))
	}

	return txs
}

func marshalFraudFlags(flags []entity.FraudFlag) ([]byte, error) {
	if flags == nil {
		flags = []entity.FraudFlag{}
	}

	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal fraud flags")
	}

	return flagsJSON, nil
}
