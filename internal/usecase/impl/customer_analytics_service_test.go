package impl

import (
	"context"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	mockRepo "pulse/internal/mocks/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// analyticsFixtures holds all test dependencies for customer analytics tests.
type analyticsFixtures struct {
	service      *customerAnalyticsService
	customerRepo *mockRepo.MockCustomerRepository
	productRepo  *mockRepo.MockProductRepository
	txRepo       *mockRepo.MockTransactionRepository
}

// analyticsNow is the fixed clock all analytics tests run against.
var analyticsNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func createTestAnalyticsService(t *testing.T) analyticsFixtures {
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	txRepo := mockRepo.NewMockTransactionRepository(t)

	cfg := &config.Config{Analytics: &config.AnalyticsConfig{}}
	service := NewCustomerAnalyticsService(customerRepo, productRepo, txRepo, cfg).(*customerAnalyticsService)
	service.now = func() time.Time { return analyticsNow }

	return analyticsFixtures{
		service:      service,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRepo:       txRepo,
	}
}

// completedTx builds a completed transaction at a given age before the fixed
// clock.
func completedTx(customerID uuid.UUID, amount float64, age time.Duration) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ProductID:   uuid.New(),
		Quantity:    1,
		TotalAmount: amount,
		Status:      entity.TransactionStatusCompleted,
		Timestamp:   analyticsNow.Add(-age),
	}
}

func TestCustomerAnalyticsService_SegmentCustomers_ZeroTransactionsIsLost(t *testing.T) {
	f := createTestAnalyticsService(t)

	idle := &entity.Customer{ID: uuid.New(), Email: "idle@example.com", FirstName: "Idle", LastName: "Account"}
	active := &entity.Customer{ID: uuid.New(), Email: "active@example.com"}
	active.Transactions = []*entity.Transaction{completedTx(active.ID, 250, 24*time.Hour)}

	f.customerRepo.EXPECT().
		FindAllWithTransactions(mock.Anything).
		Return([]*entity.Customer{idle, active}, nil)

	report, err := f.service.SegmentCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Customers, 2)

	var idleRow *usecase.RFMCustomer
	for _, row := range report.Customers {
		if row.CustomerID == idle.ID {
			idleRow = row
		}
	}
	require.NotNil(t, idleRow)
	assert.Equal(t, "Lost", idleRow.Segment)
	assert.Equal(t, "111", idleRow.RFMCode)
	assert.Nil(t, idleRow.RecencyDays)
	assert.Equal(t, 1, report.SegmentCounts["Lost"])
}

func TestCustomerAnalyticsService_SegmentCustomers_PercentileBands(t *testing.T) {
	f := createTestAnalyticsService(t)

	// Five customers ranked strictly by all three metrics at once, so the
	// percentile ranks land exactly on the band edges 0/20/40/60/80.
	recencyDays := []int{50, 40, 30, 20, 1}
	wantSegments := []string{"Lost", "Need Attention", "Potential Loyalists", "Champions", "Champions"}
	wantCodes := []string{"111", "222", "333", "444", "555"}

	customers := make([]*entity.Customer, 5)
	for i := range customers {
		customer := &entity.Customer{ID: uuid.New(), Email: "c@example.com"}
		for n := 0; n <= i; n++ {
			age := time.Duration(recencyDays[i]+n*10) * 24 * time.Hour
			customer.Transactions = append(customer.Transactions, completedTx(customer.ID, float64(100*(i+1)), age))
		}
		customers[i] = customer
	}

	f.customerRepo.EXPECT().
		FindAllWithTransactions(mock.Anything).
		Return(customers, nil)

	report, err := f.service.SegmentCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Customers, 5)

	byID := make(map[uuid.UUID]*usecase.RFMCustomer)
	for _, row := range report.Customers {
		byID[row.CustomerID] = row
	}
	for i, customer := range customers {
		row := byID[customer.ID]
		require.NotNil(t, row)
		assert.Equal(t, wantCodes[i], row.RFMCode, "customer %d", i)
		assert.Equal(t, wantSegments[i], row.Segment, "customer %d", i)
	}

	// Top customers rank by the summed R+F+M score, best first.
	require.Len(t, report.TopCustomers, 5)
	assert.Equal(t, customers[4].ID, report.TopCustomers[0].CustomerID)
	assert.Equal(t, customers[0].ID, report.TopCustomers[4].CustomerID)
}

func TestCustomerAnalyticsService_DetectChurnRisk_CriticalAtThreeAndAHalfTimes(t *testing.T) {
	f := createTestAnalyticsService(t)

	// Two purchases 10 days apart, the last 35 days ago: 3.5x the average
	// interval.
	overdue := &entity.Customer{ID: uuid.New(), Email: "overdue@example.com", LoyaltyTier: entity.LoyaltyTierNone}
	overdue.Transactions = []*entity.Transaction{
		completedTx(overdue.ID, 100, 45*24*time.Hour),
		completedTx(overdue.ID, 100, 35*24*time.Hour),
	}

	healthy := &entity.Customer{ID: uuid.New(), Email: "healthy@example.com"}
	healthy.Transactions = []*entity.Transaction{
		completedTx(healthy.ID, 100, 15*24*time.Hour),
		completedTx(healthy.ID, 100, 5*24*time.Hour),
	}

	oneOff := &entity.Customer{ID: uuid.New(), Email: "oneoff@example.com"}
	oneOff.Transactions = []*entity.Transaction{completedTx(oneOff.ID, 100, 90*24*time.Hour)}

	f.customerRepo.EXPECT().
		FindAllWithTransactions(mock.Anything).
		Return([]*entity.Customer{overdue, healthy, oneOff}, nil)

	report, err := f.service.DetectChurnRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, report.AtRisk, 1)

	atRisk := report.AtRisk[0]
	assert.Equal(t, overdue.ID, atRisk.CustomerID)
	assert.Equal(t, usecase.ChurnRiskCritical, atRisk.RiskTier)
	assert.Equal(t, 0.9, atRisk.ChurnProbability)
	assert.InDelta(t, 35, atRisk.DaysSinceLastPurchase, 0.01)
	assert.InDelta(t, 10, atRisk.AverageIntervalDays, 0.01)
	assert.Equal(t, "win-back discount email", atRisk.SuggestedAction)
}

func TestCustomerAnalyticsService_DetectChurnRisk_ActionTable(t *testing.T) {
	f := createTestAnalyticsService(t)

	vip := &entity.Customer{ID: uuid.New(), Email: "vip@example.com", LoyaltyTier: entity.LoyaltyTierPlatinum}
	vip.Transactions = []*entity.Transaction{
		completedTx(vip.ID, 900, 45*24*time.Hour),
		completedTx(vip.ID, 900, 35*24*time.Hour),
	}

	// 2.5x the average interval puts this one in the high tier.
	drifting := &entity.Customer{ID: uuid.New(), Email: "drifting@example.com", LoyaltyTier: entity.LoyaltyTierBronze}
	drifting.Transactions = []*entity.Transaction{
		completedTx(drifting.ID, 100, 35*24*time.Hour),
		completedTx(drifting.ID, 100, 25*24*time.Hour),
	}

	// 1.8x lands in the medium tier.
	cooling := &entity.Customer{ID: uuid.New(), Email: "cooling@example.com", LoyaltyTier: entity.LoyaltyTierGold}
	cooling.Transactions = []*entity.Transaction{
		completedTx(cooling.ID, 100, 28*24*time.Hour),
		completedTx(cooling.ID, 100, 18*24*time.Hour),
	}

	f.customerRepo.EXPECT().
		FindAllWithTransactions(mock.Anything).
		Return([]*entity.Customer{vip, drifting, cooling}, nil)

	report, err := f.service.DetectChurnRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, report.AtRisk, 3)

	actions := make(map[uuid.UUID]string)
	tiers := make(map[uuid.UUID]string)
	for _, atRisk := range report.AtRisk {
		actions[atRisk.CustomerID] = atRisk.SuggestedAction
		tiers[atRisk.CustomerID] = atRisk.RiskTier
	}

	assert.Equal(t, usecase.ChurnRiskCritical, tiers[vip.ID])
	assert.Equal(t, "personal VIP outreach", actions[vip.ID])
	assert.Equal(t, usecase.ChurnRiskHigh, tiers[drifting.ID])
	assert.Equal(t, "re-engagement email", actions[drifting.ID])
	assert.Equal(t, usecase.ChurnRiskMedium, tiers[cooling.ID])
	assert.Equal(t, "include in next campaign", actions[cooling.ID])

	// Report is sorted by descending probability.
	assert.Equal(t, vip.ID, report.AtRisk[0].CustomerID)
	assert.Equal(t, cooling.ID, report.AtRisk[2].CustomerID)
}

func TestCustomerAnalyticsService_PredictCLV(t *testing.T) {
	f := createTestAnalyticsService(t)

	customer := &entity.Customer{ID: uuid.New(), Email: "steady@example.com"}
	// 12 orders of $100 over 180 days: AOV 100, 2 orders/month, 6 months.
	for i := 0; i < 12; i++ {
		age := time.Duration(180-i*15) * 24 * time.Hour
		customer.Transactions = append(customer.Transactions, completedTx(customer.ID, 100, age))
	}

	f.customerRepo.EXPECT().
		FindByIDWithTransactions(mock.Anything, customer.ID).
		Return(customer, nil)

	prediction, err := f.service.PredictCLV(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, prediction.TransactionCount)
	assert.InDelta(t, 100, prediction.AverageOrderValue, 1e-9)
	assert.Equal(t, 6, prediction.MonthsActive)
	assert.InDelta(t, 2, prediction.PurchaseFrequency, 1e-9)
	assert.InDelta(t, 4800, prediction.PredictedCLV, 1e-9)
	assert.Equal(t, usecase.CLVConfidenceHigh, prediction.Confidence)
}

func TestCustomerAnalyticsService_PredictCLV_NoTransactions(t *testing.T) {
	f := createTestAnalyticsService(t)

	customer := &entity.Customer{ID: uuid.New(), Email: "new@example.com"}
	f.customerRepo.EXPECT().
		FindByIDWithTransactions(mock.Anything, customer.ID).
		Return(customer, nil)

	prediction, err := f.service.PredictCLV(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Zero(t, prediction.PredictedCLV)
	assert.Zero(t, prediction.TransactionCount)
	assert.Equal(t, usecase.CLVConfidenceLow, prediction.Confidence)
}

func TestCustomerAnalyticsService_PredictCLV_MediumConfidence(t *testing.T) {
	f := createTestAnalyticsService(t)

	customer := &entity.Customer{ID: uuid.New(), Email: "casual@example.com"}
	for i := 0; i < 5; i++ {
		customer.Transactions = append(customer.Transactions, completedTx(customer.ID, 50, time.Duration(i+1)*24*time.Hour))
	}

	f.customerRepo.EXPECT().
		FindByIDWithTransactions(mock.Anything, customer.ID).
		Return(customer, nil)

	prediction, err := f.service.PredictCLV(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.CLVConfidenceMedium, prediction.Confidence)
	// Under a month of history still counts as one active month.
	assert.Equal(t, 1, prediction.MonthsActive)
}

func TestCustomerAnalyticsService_Recommend_NewCustomerGetsBestSellers(t *testing.T) {
	f := createTestAnalyticsService(t)

	customer := &entity.Customer{ID: uuid.New(), Email: "new@example.com"}
	f.customerRepo.EXPECT().
		FindByIDWithTransactions(mock.Anything, customer.ID).
		Return(customer, nil)

	slow := &entity.Product{ID: uuid.New(), Name: "Desk Mat", Category: "office", Price: 25, StockQuantity: 5}
	fast := &entity.Product{ID: uuid.New(), Name: "Mug", Category: "kitchen", Price: 12, StockQuantity: 40}
	f.productRepo.EXPECT().FindAll(mock.Anything).Return([]*entity.Product{slow, fast}, nil)
	f.txRepo.EXPECT().
		BatchSalesByProduct(mock.Anything, mock.AnythingOfType("[]uuid.UUID"), time.Time{}).
		Return(map[uuid.UUID]int{slow.ID: 3, fast.ID: 120}, nil)

	set, err := f.service.Recommend(context.Background(), customer.ID, 2)
	require.NoError(t, err)
	assert.True(t, set.IsNewCustomer)
	assert.Empty(t, set.Collaborative)
	assert.Empty(t, set.CategoryBased)
	require.Len(t, set.BestSellers, 2)
	assert.Equal(t, fast.ID, set.BestSellers[0].ProductID)
	assert.Equal(t, float64(120), set.BestSellers[0].Weight)
}

func TestCustomerAnalyticsService_Recommend_ReturningCustomer(t *testing.T) {
	f := createTestAnalyticsService(t)

	productA := &entity.Product{ID: uuid.New(), Name: "Keyboard", Category: "electronics", Price: 90, StockQuantity: 10}
	productB := &entity.Product{ID: uuid.New(), Name: "Monitor", Category: "electronics", Price: 300, StockQuantity: 4}
	novel := &entity.Product{ID: uuid.New(), Name: "Headset", Category: "electronics", Price: 150, StockQuantity: 7}
	soldOut := &entity.Product{ID: uuid.New(), Name: "Webcam", Category: "electronics", Price: 80, StockQuantity: 0}
	upsell := &entity.Product{ID: uuid.New(), Name: "Workstation", Category: "electronics", Price: 2400, StockQuantity: 2}

	target := &entity.Customer{ID: uuid.New(), Email: "target@example.com"}
	target.Transactions = []*entity.Transaction{
		{ID: uuid.New(), CustomerID: target.ID, ProductID: productA.ID, Status: entity.TransactionStatusCompleted, Timestamp: analyticsNow.Add(-48 * time.Hour)},
		{ID: uuid.New(), CustomerID: target.ID, ProductID: productB.ID, Status: entity.TransactionStatusCompleted, Timestamp: analyticsNow.Add(-24 * time.Hour)},
	}

	// Shares both purchased products with the target, plus two more.
	twin := &entity.Customer{ID: uuid.New(), Email: "twin@example.com"}
	for _, productID := range []uuid.UUID{productA.ID, productB.ID, novel.ID, soldOut.ID} {
		twin.Transactions = append(twin.Transactions, &entity.Transaction{
			ID: uuid.New(), CustomerID: twin.ID, ProductID: productID,
			Status: entity.TransactionStatusCompleted, Timestamp: analyticsNow.Add(-24 * time.Hour),
		})
	}

	// Shares only one product; its history must not feed recommendations.
	stranger := &entity.Customer{ID: uuid.New(), Email: "stranger@example.com"}
	stranger.Transactions = []*entity.Transaction{
		{ID: uuid.New(), CustomerID: stranger.ID, ProductID: productA.ID, Status: entity.TransactionStatusCompleted, Timestamp: analyticsNow.Add(-24 * time.Hour)},
		{ID: uuid.New(), CustomerID: stranger.ID, ProductID: upsell.ID, Status: entity.TransactionStatusCompleted, Timestamp: analyticsNow.Add(-24 * time.Hour)},
	}

	f.customerRepo.EXPECT().
		FindByIDWithTransactions(mock.Anything, target.ID).
		Return(target, nil)
	f.customerRepo.EXPECT().
		FindAllWithTransactions(mock.Anything).
		Return([]*entity.Customer{target, twin, stranger}, nil)
	f.productRepo.EXPECT().
		FindByIDs(mock.Anything, mock.AnythingOfType("[]uuid.UUID")).
		RunAndReturn(func(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
			catalog := map[uuid.UUID]*entity.Product{
				productA.ID: productA, productB.ID: productB,
				novel.ID: novel, soldOut.ID: soldOut, upsell.ID: upsell,
			}
			out := make([]*entity.Product, 0, len(ids))
			for _, id := range ids {
				if product, ok := catalog[id]; ok {
					out = append(out, product)
				}
			}
			return out, nil
		})
	f.productRepo.EXPECT().
		FindInStockByCategories(mock.Anything, []string{"electronics"}).
		Return([]*entity.Product{upsell, productB, novel, productA}, nil)

	set, err := f.service.Recommend(context.Background(), target.ID, 3)
	require.NoError(t, err)
	assert.False(t, set.IsNewCustomer)
	assert.Empty(t, set.BestSellers)

	// Only the in-stock product bought by genuinely similar customers.
	require.Len(t, set.Collaborative, 1)
	assert.Equal(t, novel.ID, set.Collaborative[0].ProductID)
	assert.Equal(t, float64(1), set.Collaborative[0].Weight)

	// Category picks exclude what the target already owns.
	require.Len(t, set.CategoryBased, 2)
	assert.Equal(t, upsell.ID, set.CategoryBased[0].ProductID)
	assert.Equal(t, novel.ID, set.CategoryBased[1].ProductID)
}
