package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	domainService "pulse/internal/domain/service"
	mockRepo "pulse/internal/mocks/repository"
	mockService "pulse/internal/mocks/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fraudServiceFixtures holds all test dependencies for fraud service tests.
type fraudServiceFixtures struct {
	service      usecase.FraudUsecase
	txRepo       *mockRepo.MockTransactionRepository
	customerRepo *mockRepo.MockCustomerRepository
	alertRepo    *mockRepo.MockAlertRepository
	publisher    *mockService.MockAlertPublisher
}

func createTestFraudService(t *testing.T) fraudServiceFixtures {
	txRepo := mockRepo.NewMockTransactionRepository(t)
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	alertRepo := mockRepo.NewMockAlertRepository(t)
	publisher := mockService.NewMockAlertPublisher(t)

	cfg := &config.Config{
		Fraud: &config.FraudConfig{
			VelocityWindow:    10 * time.Minute,
			VelocityThreshold: 5,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewFraudService(logger, txRepo, customerRepo, alertRepo, publisher, nil, cfg)

	return fraudServiceFixtures{
		service:      service,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
	}
}

// quietAfternoon is a fixed timestamp outside the unusual-hours window.
var quietAfternoon = time.Date(2026, 3, 16, 14, 30, 0, 0, time.UTC)

func newTestTransaction(customerID uuid.UUID, amount float64) *entity.Transaction {
	return &entity.Transaction{
		ID:            uuid.New(),
		CustomerID:    customerID,
		ProductID:     uuid.New(),
		Quantity:      1,
		UnitPrice:     amount,
		TotalAmount:   amount,
		Status:        entity.TransactionStatusCompleted,
		PaymentMethod: "credit_card",
		Timestamp:     quietAfternoon,
		IPAddress:     "203.0.113.10",
		UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
	}
}

func newTestCustomer(totalSpent float64) *entity.Customer {
	return &entity.Customer{
		ID:         uuid.New(),
		Email:      "shopper@example.com",
		FirstName:  "Mei",
		LastName:   "Lin",
		TotalSpent: totalSpent,
	}
}

// expectNoVelocity makes the velocity check come back below threshold.
func (f fraudServiceFixtures) expectNoVelocity(count int64) {
	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, mock.Anything, mock.Anything).
		Return(count, nil)
}

func TestFraudService_Score_CleanTransaction(t *testing.T) {
	f := createTestFraudService(t)
	f.expectNoVelocity(1)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 120)

	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	assert.Zero(t, analysis.FraudScore)
	assert.Empty(t, analysis.Flags)
	assert.False(t, analysis.IsSuspicious)
	assert.Equal(t, entity.AlertSeverityLow, analysis.Severity)
}

func TestFraudService_Score_AmountOverHardLimit(t *testing.T) {
	f := createTestFraudService(t)
	f.expectNoVelocity(1)

	// TotalSpent keeps the estimated average high enough that only the
	// hard-limit rule can fire.
	customer := newTestCustomer(100000)
	tx := newTestTransaction(customer.ID, 15000)

	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	require.Len(t, analysis.Flags, 1)
	assert.Equal(t, entity.FraudFlagAmountAnomaly, analysis.Flags[0].Type)
	assert.Equal(t, 40, analysis.Flags[0].Score)
	assert.InDelta(t, 0.4, analysis.FraudScore, 1e-9)
	assert.False(t, analysis.IsSuspicious)
	assert.Equal(t, entity.AlertSeverityMedium, analysis.Severity)
}

func TestFraudService_Score_AmountRuleOrder(t *testing.T) {
	f := createTestFraudService(t)

	tests := []struct {
		name       string
		totalSpent float64
		amount     float64
		wantScore  int
	}{
		// Hard limit wins even when the 3x-average rule also matches.
		{name: "hard limit over average rule", totalSpent: 100, amount: 10001, wantScore: 40},
		{name: "micro amount", totalSpent: 5000, amount: 0.005, wantScore: 20},
		// Average rule wins over the soft limit when both match.
		{name: "average rule over soft limit", totalSpent: 0, amount: 6000, wantScore: 25},
		// $80 average keeps 3x at $240; $300 clears it but not the soft limit.
		{name: "average rule alone", totalSpent: 800, amount: 300, wantScore: 25},
		{name: "soft limit alone", totalSpent: 20000, amount: 5500, wantScore: 15},
		{name: "boundary amount does not fire", totalSpent: 100000, amount: 10000, wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.expectNoVelocity(1)

			customer := newTestCustomer(tt.totalSpent)
			tx := newTestTransaction(customer.ID, tt.amount)

			analysis, err := f.service.Score(context.Background(), tx, customer)
			require.NoError(t, err)

			if tt.wantScore == 0 {
				assert.Empty(t, analysis.Flags)
				return
			}
			require.Len(t, analysis.Flags, 1)
			assert.Equal(t, entity.FraudFlagAmountAnomaly, analysis.Flags[0].Type)
			assert.Equal(t, tt.wantScore, analysis.Flags[0].Score)
		})
	}
}

func TestFraudService_Score_VelocityWindow(t *testing.T) {
	f := createTestFraudService(t)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 100)

	// The count is taken over the trailing window ending at the transaction
	// timestamp, inclusive of the transaction itself.
	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, customer.ID, tx.Timestamp.Add(-10*time.Minute)).
		Return(6, nil)

	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	require.Len(t, analysis.Flags, 1)
	assert.Equal(t, entity.FraudFlagVelocity, analysis.Flags[0].Type)
	assert.Equal(t, 30, analysis.Flags[0].Score)
}

func TestFraudService_Score_VelocityBelowThreshold(t *testing.T) {
	f := createTestFraudService(t)
	f.expectNoVelocity(4)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 100)

	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	assert.Empty(t, analysis.Flags)
}

func TestFraudService_Score_VelocityQueryFailureDegrades(t *testing.T) {
	f := createTestFraudService(t)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 100)

	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, mock.Anything, mock.Anything).
		Return(0, errors.New("connection reset"))

	// A failed count degrades only the velocity signal.
	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	assert.Empty(t, analysis.Flags)
	assert.Zero(t, analysis.FraudScore)
}

func TestFraudService_Score_UnusualHours(t *testing.T) {
	f := createTestFraudService(t)

	tests := []struct {
		hour     int
		wantFlag bool
	}{
		{hour: 1, wantFlag: false},
		{hour: 2, wantFlag: true},
		{hour: 5, wantFlag: true},
		{hour: 6, wantFlag: false},
	}

	for _, tt := range tests {
		f.expectNoVelocity(1)

		customer := newTestCustomer(5000)
		tx := newTestTransaction(customer.ID, 100)
		tx.Timestamp = time.Date(2026, 3, 16, tt.hour, 15, 0, 0, time.UTC)

		analysis, err := f.service.Score(context.Background(), tx, customer)
		require.NoError(t, err)

		if tt.wantFlag {
			require.Len(t, analysis.Flags, 1, "hour %d", tt.hour)
			assert.Equal(t, entity.FraudFlagTimePattern, analysis.Flags[0].Type)
			assert.Equal(t, 15, analysis.Flags[0].Score)
		} else {
			assert.Empty(t, analysis.Flags, "hour %d", tt.hour)
		}
	}
}

func TestFraudService_Score_CustomerRisk(t *testing.T) {
	f := createTestFraudService(t)

	t.Run("high risk score", func(t *testing.T) {
		f.expectNoVelocity(1)

		customer := newTestCustomer(5000)
		customer.RiskScore = 0.7
		tx := newTestTransaction(customer.ID, 100)

		analysis, err := f.service.Score(context.Background(), tx, customer)
		require.NoError(t, err)
		require.Len(t, analysis.Flags, 1)
		assert.Equal(t, entity.FraudFlagCustomerRisk, analysis.Flags[0].Type)
		assert.Equal(t, 25, analysis.Flags[0].Score)
	})

	t.Run("risk score below threshold", func(t *testing.T) {
		f.expectNoVelocity(1)

		customer := newTestCustomer(5000)
		customer.RiskScore = 0.69
		tx := newTestTransaction(customer.ID, 100)

		analysis, err := f.service.Score(context.Background(), tx, customer)
		require.NoError(t, err)
		assert.Empty(t, analysis.Flags)
	})
}

func TestFraudService_Score_BotSignature(t *testing.T) {
	f := createTestFraudService(t)

	tests := []struct {
		name      string
		userAgent string
		wantScore int
	}{
		{name: "missing agent", userAgent: "", wantScore: 15},
		{name: "crawler", userAgent: "Googlebot/2.1 (+http://www.google.com/bot.html)", wantScore: 20},
		{name: "scripted client", userAgent: "python-requests/2.31.0", wantScore: 20},
		{name: "jvm client", userAgent: "Java/1.8.0_292", wantScore: 20},
		{name: "browser", userAgent: "Mozilla/5.0 (X11; Linux x86_64)", wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.expectNoVelocity(1)

			customer := newTestCustomer(5000)
			tx := newTestTransaction(customer.ID, 100)
			tx.UserAgent = tt.userAgent

			analysis, err := f.service.Score(context.Background(), tx, customer)
			require.NoError(t, err)

			if tt.wantScore == 0 {
				assert.Empty(t, analysis.Flags)
				return
			}
			require.Len(t, analysis.Flags, 1)
			assert.Equal(t, entity.FraudFlagBotSignature, analysis.Flags[0].Type)
			assert.Equal(t, tt.wantScore, analysis.Flags[0].Score)
		})
	}
}

func TestFraudService_Score_FlagOrderIsDeterministic(t *testing.T) {
	f := createTestFraudService(t)
	f.expectNoVelocity(1)
	f.alertRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Alert")).Return(nil)

	published := make(chan struct{})
	f.publisher.EXPECT().
		PublishAlertEvent(mock.Anything, mock.AnythingOfType("*service.AlertEvent")).
		RunAndReturn(func(ctx context.Context, event *domainService.AlertEvent) error {
			close(published)
			return nil
		})

	customer := newTestCustomer(100000)
	tx := newTestTransaction(customer.ID, 15000)
	tx.Timestamp = time.Date(2026, 3, 16, 3, 0, 0, 0, time.UTC)
	tx.UserAgent = "curl/8.5.0"

	analysis, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("alert event was not broadcast")
	}

	require.Len(t, analysis.Flags, 3)
	assert.Equal(t, entity.FraudFlagAmountAnomaly, analysis.Flags[0].Type)
	assert.Equal(t, entity.FraudFlagTimePattern, analysis.Flags[1].Type)
	assert.Equal(t, entity.FraudFlagBotSignature, analysis.Flags[2].Type)
	assert.InDelta(t, 0.75, analysis.FraudScore, 1e-9)
	assert.True(t, analysis.IsSuspicious)
	assert.Equal(t, entity.AlertSeverityHigh, analysis.Severity)
}

func TestFraudService_Score_SaturatesAtOne(t *testing.T) {
	f := createTestFraudService(t)

	// Every check fires: 40 + 30 + 15 + 20 + 20 = 125 raw points.
	tx := newTestTransaction(uuid.New(), 15000)
	tx.Timestamp = time.Date(2026, 3, 16, 3, 0, 0, 0, time.UTC)
	tx.UserAgent = ""

	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, mock.Anything, mock.Anything).
		Return(9, nil)
	f.alertRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Alert")).Return(nil)

	published := make(chan struct{})
	f.publisher.EXPECT().
		PublishAlertEvent(mock.Anything, mock.AnythingOfType("*service.AlertEvent")).
		RunAndReturn(func(ctx context.Context, event *domainService.AlertEvent) error {
			close(published)
			return nil
		})

	analysis, err := f.service.Score(context.Background(), tx, nil)
	require.NoError(t, err)
	require.Len(t, analysis.Flags, 5)
	assert.Equal(t, 1.0, analysis.FraudScore)
	assert.True(t, analysis.IsSuspicious)
	assert.Equal(t, entity.AlertSeverityCritical, analysis.Severity)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("alert event was not broadcast")
	}
}

func TestFraudService_Score_SuspiciousAtThreshold(t *testing.T) {
	f := createTestFraudService(t)

	// Velocity (30) plus unknown customer (20) lands exactly on 0.5.
	tx := newTestTransaction(uuid.New(), 100)

	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, mock.Anything, mock.Anything).
		Return(5, nil)

	var created *entity.Alert
	f.alertRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Alert")).
		Run(func(ctx context.Context, alert *entity.Alert) {
			created = alert
		}).
		Return(nil)

	published := make(chan struct{})
	f.publisher.EXPECT().
		PublishAlertEvent(mock.Anything, mock.AnythingOfType("*service.AlertEvent")).
		RunAndReturn(func(ctx context.Context, event *domainService.AlertEvent) error {
			close(published)
			return nil
		})

	analysis, err := f.service.Score(context.Background(), tx, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, analysis.FraudScore, 1e-9)
	assert.True(t, analysis.IsSuspicious)
	assert.Equal(t, entity.AlertSeverityMedium, analysis.Severity)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("alert event was not broadcast")
	}

	require.NotNil(t, created)
	assert.Equal(t, entity.AlertTypeFraud, created.Type)
	assert.Equal(t, entity.AlertSeverityMedium, created.Severity)
	require.NotNil(t, created.TransactionID)
	assert.Equal(t, tx.ID, *created.TransactionID)
}

func TestFraudService_Score_AlertPersistFailureDoesNotFailScoring(t *testing.T) {
	f := createTestFraudService(t)

	tx := newTestTransaction(uuid.New(), 100)

	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, mock.Anything, mock.Anything).
		Return(5, nil)
	f.alertRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Alert")).
		Return(errors.New("insert failed"))

	published := make(chan struct{})
	f.publisher.EXPECT().
		PublishAlertEvent(mock.Anything, mock.AnythingOfType("*service.AlertEvent")).
		RunAndReturn(func(ctx context.Context, event *domainService.AlertEvent) error {
			close(published)
			return errors.New("broker unavailable")
		})

	analysis, err := f.service.Score(context.Background(), tx, nil)
	require.NoError(t, err)
	assert.True(t, analysis.IsSuspicious)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("alert event was not broadcast")
	}
}

func TestFraudService_Score_Idempotent(t *testing.T) {
	f := createTestFraudService(t)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 100)
	tx.UserAgent = "curl/8.5.0"

	f.txRepo.EXPECT().
		CountByCustomerSince(mock.Anything, customer.ID, mock.Anything).
		Return(2, nil).
		Times(2)

	first, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)
	second, err := f.service.Score(context.Background(), tx, customer)
	require.NoError(t, err)

	assert.Equal(t, first.FraudScore, second.FraudScore)
	assert.Equal(t, first.Flags, second.Flags)
	assert.Equal(t, first.Severity, second.Severity)
}

func TestFraudService_ScoreTransactionByID_Success(t *testing.T) {
	f := createTestFraudService(t)

	customer := newTestCustomer(5000)
	tx := newTestTransaction(customer.ID, 300)
	tx.UserAgent = "curl/8.5.0"

	f.txRepo.EXPECT().FindByID(mock.Anything, tx.ID).Return(tx, nil)
	f.customerRepo.EXPECT().FindByID(mock.Anything, customer.ID).Return(customer, nil)
	f.expectNoVelocity(1)
	f.txRepo.EXPECT().
		UpdateFraudAnnotation(mock.Anything, tx.ID, 0.2, mock.AnythingOfType("[]entity.FraudFlag")).
		Return(nil)

	result, err := f.service.ScoreTransactionByID(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, result.Transaction.FraudScore, 1e-9)
	require.Len(t, result.Transaction.FraudFlags, 1)
	assert.Equal(t, entity.FraudFlagBotSignature, result.Transaction.FraudFlags[0].Type)
	assert.Equal(t, result.Analysis.Flags, result.Transaction.FraudFlags)
}

func TestFraudService_ScoreTransactionByID_UnknownCustomer(t *testing.T) {
	f := createTestFraudService(t)

	tx := newTestTransaction(uuid.New(), 300)

	f.txRepo.EXPECT().FindByID(mock.Anything, tx.ID).Return(tx, nil)
	f.customerRepo.EXPECT().
		FindByID(mock.Anything, tx.CustomerID).
		Return(nil, repository.ErrCustomerNotFound)
	f.expectNoVelocity(1)
	f.txRepo.EXPECT().
		UpdateFraudAnnotation(mock.Anything, tx.ID, 0.2, mock.AnythingOfType("[]entity.FraudFlag")).
		Return(nil)

	result, err := f.service.ScoreTransactionByID(context.Background(), tx.ID)
	require.NoError(t, err)
	require.Len(t, result.Analysis.Flags, 1)
	assert.Equal(t, entity.FraudFlagCustomerRisk, result.Analysis.Flags[0].Type)
}

func TestFraudService_ScoreTransactionByID_NotFound(t *testing.T) {
	f := createTestFraudService(t)

	id := uuid.New()
	f.txRepo.EXPECT().FindByID(mock.Anything, id).Return(nil, repository.ErrTransactionNotFound)

	result, err := f.service.ScoreTransactionByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrTransactionNotFound))
	assert.Nil(t, result)
}
