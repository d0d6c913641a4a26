// Package impl contains the concrete implementations of the application use cases.
package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pulse/config"
	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/constants"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
)

// Point contributions and thresholds of the five fraud checks. Points are
// additive across checks; the aggregate saturates at 100 points (score 1.0).
const (
	amountHardLimit      = 10000.0
	amountMicroThreshold = 0.01
	amountSoftLimit      = 5000.0
	amountAvgMultiplier  = 3.0
	defaultAvgOrderValue = 500.0

	pointsAmountHardLimit = 40
	pointsAmountMicro     = 20
	pointsAmountAboveAvg  = 25
	pointsAmountSoftLimit = 15
	pointsVelocity        = 30
	pointsTimePattern     = 15
	pointsUnknownCustomer = 20
	pointsRiskyCustomer   = 25
	pointsMissingAgent    = 15
	pointsBotAgent        = 20

	highRiskCustomerThreshold = 0.7

	quietHourStart = 2
	quietHourEnd   = 5

	defaultVelocityWindow    = 10 * time.Minute
	defaultVelocityThreshold = 5
)

// botAgentPatterns are matched case-insensitively against the user agent.
var botAgentPatterns = []string{"bot", "crawler", "spider", "curl", "wget", "python", "java/", "php"}

// amountRule is one entry of the ordered amount-anomaly rule list. Rules are
// evaluated top to bottom and only the first match contributes, which makes
// the tie-break order an explicit, testable artifact.
type amountRule struct {
	applies func(amount, avgOrder float64) bool
	score   int
	message func(amount float64) string
}

var amountRules = []amountRule{
	{
		applies: func(amount, _ float64) bool { return amount > amountHardLimit },
		score:   pointsAmountHardLimit,
		message: func(amount float64) string {
			return fmt.Sprintf("amount $%.2f exceeds limit of $%.0f", amount, amountHardLimit)
		},
	},
	{
		applies: func(amount, _ float64) bool { return amount < amountMicroThreshold },
		score:   pointsAmountMicro,
		message: func(amount float64) string {
			return fmt.Sprintf("amount $%.4f is suspiciously small", amount)
		},
	},
	{
		applies: func(amount, avgOrder float64) bool { return amount > avgOrder*amountAvgMultiplier },
		score:   pointsAmountAboveAvg,
		message: func(amount float64) string {
			return fmt.Sprintf("amount $%.2f is over 3x the customer's estimated average order", amount)
		},
	},
	{
		applies: func(amount, _ float64) bool { return amount > amountSoftLimit },
		score:   pointsAmountSoftLimit,
		message: func(amount float64) string {
			return fmt.Sprintf("amount $%.2f is unusually high", amount)
		},
	},
}

type fraudService struct {
	logger       *slog.Logger
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	alertRepo    repository.AlertRepository
	publisher    service.AlertPublisher
	notifier     service.NotificationService
	cfg          *config.Config
}

// NewFraudService creates a new fraud scoring engine instance.
// notifier may be nil when push notifications are not configured.
func NewFraudService(
	logger *slog.Logger,
	txRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	alertRepo repository.AlertRepository,
	publisher service.AlertPublisher,
	notifier service.NotificationService,
	cfg *config.Config,
) usecase.FraudUsecase {
	// If Fraud is not configured, provide a default configuration
	if cfg.Fraud == nil {
		cfg.Fraud = &config.FraudConfig{
			VelocityWindow:    defaultVelocityWindow,
			VelocityThreshold: defaultVelocityThreshold,
		}
	}
	if cfg.Fraud.VelocityWindow <= 0 {
		cfg.Fraud.VelocityWindow = defaultVelocityWindow
	}
	if cfg.Fraud.VelocityThreshold <= 0 {
		cfg.Fraud.VelocityThreshold = defaultVelocityThreshold
	}

	return &fraudService{
		logger:       logger,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// Score runs the five checks in fixed order and aggregates their points.
// customer may be nil; that is the unknown-customer risk signal.
func (s *fraudService) Score(ctx context.Context, tx *entity.Transaction, customer *entity.Customer) (*entity.FraudAnalysis, error) {
	if tx == nil {
		return nil, errors.New("transaction must not be nil")
	}

	flags := make([]entity.FraudFlag, 0, 5)

	if flag := s.checkAmount(tx, customer); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := s.checkVelocity(ctx, tx); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := s.checkTimePattern(tx); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := s.checkCustomerRisk(customer); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := s.checkBotSignature(tx); flag != nil {
		flags = append(flags, *flag)
	}

	points := 0
	for _, flag := range flags {
		points += flag.Score
	}

	score := float64(points) / 100
	if score > 1.0 {
		score = 1.0
	}

	analysis := &entity.FraudAnalysis{
		FraudScore:   score,
		Flags:        flags,
		IsSuspicious: score >= entity.SuspiciousScoreThreshold,
		Severity:     entity.SeverityForFraudScore(score),
	}

	if analysis.IsSuspicious {
		s.raiseAlert(ctx, tx, analysis)
	}

	return analysis, nil
}

// ScoreTransactionByID loads the transaction and its customer, scores the
// transaction, and persists the fraud annotation (the core's only write).
func (s *fraudService) ScoreTransactionByID(ctx context.Context, transactionID uuid.UUID) (*usecase.ScoreResult, error) {
	if transactionID == uuid.Nil {
		return nil, errors.New("transaction id must not be nil")
	}

	tx, err := s.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}

	// A missing customer is a risk signal handled by the customer-risk
	// check, not an error.
	customer, err := s.customerRepo.FindByID(ctx, tx.CustomerID)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}

	analysis, err := s.Score(ctx, tx, customer)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.UpdateFraudAnnotation(ctx, tx.ID, analysis.FraudScore, analysis.Flags); err != nil {
		return nil, fmt.Errorf("failed to persist fraud annotation: %w", err)
	}

	tx.FraudScore = analysis.FraudScore
	tx.FraudFlags = analysis.Flags

	return &usecase.ScoreResult{Transaction: tx, Analysis: analysis}, nil
}

// checkAmount evaluates the ordered amount rules; only the first matching
// rule contributes, unlike across checks where points are additive.
func (s *fraudService) checkAmount(tx *entity.Transaction, customer *entity.Customer) *entity.FraudFlag {
	// total_spent/10 is a deliberate average-order proxy carried over from
	// the original scoring rules; do not replace it with a computed AOV.
	avgOrder := defaultAvgOrderValue
	if customer != nil && customer.TotalSpent > 0 {
		avgOrder = customer.TotalSpent / 10
	}

	for _, rule := range amountRules {
		if rule.applies(tx.TotalAmount, avgOrder) {
			return &entity.FraudFlag{
				Type:    entity.FraudFlagAmountAnomaly,
				Score:   rule.score,
				Message: rule.message(tx.TotalAmount),
			}
		}
	}

	return nil
}

// checkVelocity counts the customer's transactions in the trailing window,
// inclusive of the one being scored. A repository failure degrades this one
// signal to "not suspicious" and is surfaced to logging only.
func (s *fraudService) checkVelocity(ctx context.Context, tx *entity.Transaction) *entity.FraudFlag {
	since := tx.Timestamp.Add(-s.cfg.Fraud.VelocityWindow)

	count, err := s.txRepo.CountByCustomerSince(ctx, tx.CustomerID, since)
	if err != nil {
		s.logger.Warn("velocity check degraded, transaction count unavailable",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("error", err.Error()),
		)

		return nil
	}

	if count < int64(s.cfg.Fraud.VelocityThreshold) {
		return nil
	}

	return &entity.FraudFlag{
		Type:  entity.FraudFlagVelocity,
		Score: pointsVelocity,
		Message: fmt.Sprintf("%d transactions within %s",
			count, s.cfg.Fraud.VelocityWindow),
	}
}

// checkTimePattern flags transactions placed in the quiet hours [2, 5].
func (s *fraudService) checkTimePattern(tx *entity.Transaction) *entity.FraudFlag {
	hour := tx.Timestamp.Hour()
	if hour < quietHourStart || hour > quietHourEnd {
		return nil
	}

	return &entity.FraudFlag{
		Type:    entity.FraudFlagTimePattern,
		Score:   pointsTimePattern,
		Message: fmt.Sprintf("transaction placed at %02d:00, inside the unusual-hours window", hour),
	}
}

// checkCustomerRisk flags unknown customers and known customers whose
// externally maintained risk score is high.
func (s *fraudService) checkCustomerRisk(customer *entity.Customer) *entity.FraudFlag {
	if customer == nil {
		return &entity.FraudFlag{
			Type:    entity.FraudFlagCustomerRisk,
			Score:   pointsUnknownCustomer,
			Message: "unknown customer",
		}
	}

	if customer.RiskScore >= highRiskCustomerThreshold {
		return &entity.FraudFlag{
			Type:    entity.FraudFlagCustomerRisk,
			Score:   pointsRiskyCustomer,
			Message: fmt.Sprintf("customer risk score %.2f is high", customer.RiskScore),
		}
	}

	return nil
}

// checkBotSignature flags missing or automated-looking user agents. A
// missing agent takes priority; only one of the two signals fires.
func (s *fraudService) checkBotSignature(tx *entity.Transaction) *entity.FraudFlag {
	if tx.UserAgent == "" {
		return &entity.FraudFlag{
			Type:    entity.FraudFlagBotSignature,
			Score:   pointsMissingAgent,
			Message: "missing user agent",
		}
	}

	agent := strings.ToLower(tx.UserAgent)
	for _, pattern := range botAgentPatterns {
		if strings.Contains(agent, pattern) {
			return &entity.FraudFlag{
				Type:    entity.FraudFlagBotSignature,
				Score:   pointsBotAgent,
				Message: fmt.Sprintf("user agent matches automation pattern %q", pattern),
			}
		}
	}

	return nil
}

// raiseAlert persists a fraud alert and broadcasts it. Both side effects are
// fire-and-forget: failures are logged and never fail the scoring call.
func (s *fraudService) raiseAlert(ctx context.Context, tx *entity.Transaction, analysis *entity.FraudAnalysis) {
	messages := make([]string, 0, len(analysis.Flags))
	for _, flag := range analysis.Flags {
		messages = append(messages, flag.Message)
	}

	alert := &entity.Alert{
		ID:            uuid.New(),
		Type:          entity.AlertTypeFraud,
		Severity:      analysis.Severity,
		Title:         "Suspicious transaction detected",
		Message:       strings.Join(messages, "; "),
		TransactionID: &tx.ID,
		CustomerID:    &tx.CustomerID,
		ProductID:     &tx.ProductID,
		Metadata: map[string]any{
			"fraud_score": analysis.FraudScore,
			"flag_count":  len(analysis.Flags),
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("failed to persist fraud alert",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	event := &service.AlertEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		EventType:   constants.EventTypeFraudAlert,
		Alert:       alert,
		Transaction: tx,
		Analysis:    analysis,
	}

	// Broadcast off the scoring path. The detached context keeps the publish
	// alive after the request that triggered scoring completes.
	go func(ctx context.Context) {
		if err := s.publisher.PublishAlertEvent(ctx, event); err != nil {
			s.logger.Error("failed to broadcast fraud alert",
				slog.String("alert_id", alert.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}(context.WithoutCancel(ctx))

	if analysis.Severity == entity.AlertSeverityCritical {
		s.pageOnCall(context.WithoutCancel(ctx), alert)
	}
}

// pageOnCall pushes a critical alert to the configured ops devices.
func (s *fraudService) pageOnCall(ctx context.Context, alert *entity.Alert) {
	if s.notifier == nil || s.cfg.Fraud == nil || len(s.cfg.Fraud.OpsDeviceTokens) == 0 {
		return
	}

	tokens := s.cfg.Fraud.OpsDeviceTokens
	go func() {
		_, failed, _, err := s.notifier.SendBatchNotification(ctx, tokens,
			"Critical fraud alert", alert.Message,
			map[string]string{"alert_id": alert.ID.String()},
		)
		if err != nil || failed > 0 {
			s.logger.Warn("critical alert push degraded",
				slog.String("alert_id", alert.ID.String()),
				slog.Int("failed", failed),
				slog.Any("error", err),
			)
		}
	}()
}
