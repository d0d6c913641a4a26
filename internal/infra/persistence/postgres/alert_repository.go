package postgres

import (
	"context"
	"encoding/json"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// alertRepository implements the repository.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// Create persists a new alert and fills in its generated ID and timestamps.
func (repo *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	alertM, err := fromAlertDomain(alert)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(alertM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAlertCreationFailed.WrapMessage("invalid linked record reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAlertCreationFailed.WrapMessage("missing required alert information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert")
	}

	// Update the entity with generated values
	alert.ID = alertM.ID
	alert.CreatedAt = alertM.CreatedAt
	alert.UpdatedAt = alertM.UpdatedAt

	return nil
}

// fromAlertDomain maps a pure domain entity to a GORM persistence model.
func fromAlertDomain(data *entity.Alert) (*model.AlertModel, error) {
	alertM := &model.AlertModel{
		ID:            data.ID,
		Type:          string(data.Type),
		Severity:      string(data.Severity),
		Title:         data.Title,
		Message:       data.Message,
		TransactionID: data.TransactionID,
		CustomerID:    data.CustomerID,
		ProductID:     data.ProductID,
		IsRead:        data.IsRead,
		Resolved:      data.Resolved,
	}

	if data.Metadata != nil {
		metadataJSON, err := json.Marshal(data.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal alert metadata")
		}
		alertM.Metadata = metadataJSON
	}

	return alertM, nil
}
