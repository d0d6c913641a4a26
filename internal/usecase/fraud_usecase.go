// Package usecase defines the application-layer interfaces and their
// input/output types. Implementations live in usecase/impl.
package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ScoreResult bundles a scored transaction with its analysis. The fraud
// score and flags have already been persisted onto the transaction when this
// is returned from ScoreTransactionByID.
type ScoreResult struct {
	Transaction *entity.Transaction   `json:"transaction"`
	Analysis    *entity.FraudAnalysis `json:"analysis"`
}

// FraudUsecase defines the fraud scoring engine's contract.
type FraudUsecase interface {
	// Score computes the fraud analysis for a transaction/customer snapshot.
	// customer may be nil for unknown customers; that is a risk signal, not
	// an error. Apart from the velocity lookup the computation is pure, and
	// rescoring the same snapshot yields an identical analysis. When the
	// analysis is suspicious an alert is persisted and broadcast as a side
	// effect; broadcast failures never fail the call.
	Score(ctx context.Context, tx *entity.Transaction, customer *entity.Customer) (*entity.FraudAnalysis, error)

	// ScoreTransactionByID loads the transaction and its customer, scores
	// the transaction, and persists the fraud annotation onto it.
	ScoreTransactionByID(ctx context.Context, transactionID uuid.UUID) (*ScoreResult, error)
}
