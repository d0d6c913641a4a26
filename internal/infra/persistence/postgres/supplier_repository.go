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

// supplierRepository implements the repository.SupplierRepository interface.
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository is the constructor for supplierRepository.
func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{
		db: db,
	}
}

// FindByID retrieves a single supplier by its unique ID.
func (repo *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplierM model.SupplierModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&supplierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, "failed to find supplier by ID")
	}

	return toSupplierDomain(&supplierM), nil
}

// FindAll retrieves all suppliers.
func (repo *supplierRepository) FindAll(ctx context.Context) ([]*entity.Supplier, error) {
	var supplierModels []*model.SupplierModel

	if err := repo.db.WithContext(ctx).
		Find(&supplierModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find suppliers")
	}

	suppliers := make([]*entity.Supplier, 0, len(supplierModels))
	for _, supplierM := range supplierModels {
		suppliers = append(suppliers, toSupplierDomain(supplierM))
	}

	return suppliers, nil
}

// toSupplierDomain maps a persistence model back to a pure domain entity.
func toSupplierDomain(data *model.SupplierModel) *entity.Supplier {
	return &entity.Supplier{
		ID:                  data.ID,
		Name:                data.Name,
		ReliabilityScore:    data.ReliabilityScore,
		AverageDeliveryDays: data.AverageDeliveryDays,
		PaymentTerms:        data.PaymentTerms,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
