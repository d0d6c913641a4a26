// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pulse/internal/domain/entity"
)

// AlertRepository persists alerts raised by the analytical engines. The
// read/resolve lifecycle is owned by the alerting collaborator, so the core
// only needs the write side.
type AlertRepository interface {
	// Create persists a new alert and fills in its generated ID and timestamps.
	Create(ctx context.Context, alert *entity.Alert) error
}
