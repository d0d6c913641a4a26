package postgres

import (
	"context"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

// FindByID retrieves a single customer by their unique ID.
func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by ID")
	}

	return toCustomerDomain(&customerM), nil
}

// FindByIDWithTransactions retrieves a customer with their full transaction
// history eager-loaded, ordered by timestamp ascending.
func (repo *customerRepository) FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Where("id = ?", id).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer with transactions")
	}

	return toCustomerDomain(&customerM), nil
}

// FindAllWithTransactions retrieves the whole customer population with
// transaction histories eager-loaded. Intended for batch analytics runs.
func (repo *customerRepository) FindAllWithTransactions(ctx context.Context) ([]*entity.Customer, error) {
	var customerModels []*model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find customers with transactions")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerM := range customerModels {
		customers = append(customers, toCustomerDomain(customerM))
	}

	return customers, nil
}

// toCustomerDomain maps a persistence model back to a pure domain entity.
func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	customer := &entity.Customer{
		ID:               data.ID,
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		RegistrationDate: data.RegistrationDate,
		TotalSpent:       data.TotalSpent,
		RiskScore:        data.RiskScore,
		LoyaltyTier:      entity.LoyaltyTier(data.LoyaltyTier),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}

	if len(data.Transactions) > 0 {
		customer.Transactions = make([]*entity.Transaction, 0, len(data.Transactions))
		for i := range data.Transactions {
			customer.Transactions = append(customer.Transactions, toTransactionDomain(&data.Transactions[i]))
		}
	}

	return customer
}
