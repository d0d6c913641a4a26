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

// inventoryFixtures holds all test dependencies for inventory engine tests.
type inventoryFixtures struct {
	service      *inventoryService
	productRepo  *mockRepo.MockProductRepository
	supplierRepo *mockRepo.MockSupplierRepository
	txRepo       *mockRepo.MockTransactionRepository
}

var inventoryNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func createTestInventoryService(t *testing.T) inventoryFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	supplierRepo := mockRepo.NewMockSupplierRepository(t)
	txRepo := mockRepo.NewMockTransactionRepository(t)

	cfg := &config.Config{Inventory: &config.InventoryConfig{}}
	service := NewInventoryService(productRepo, supplierRepo, txRepo, cfg).(*inventoryService)
	service.now = func() time.Time { return inventoryNow }

	return inventoryFixtures{
		service:      service,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		txRepo:       txRepo,
	}
}

// saleOnDay builds a completed sale on a given day offset inside the
// trailing 30-day window (0 = oldest day).
func saleOnDay(productID uuid.UUID, day, quantity int) *entity.Transaction {
	start := inventoryNow.AddDate(0, 0, -30)

	return &entity.Transaction{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Status:    entity.TransactionStatusCompleted,
		Timestamp: start.Add(time.Duration(day)*24*time.Hour + time.Hour),
	}
}

func TestInventoryService_ForecastStock_LinearDepletion(t *testing.T) {
	f := createTestInventoryService(t)

	product := &entity.Product{ID: uuid.New(), Name: "Thermal Mug", StockQuantity: 20}
	txs := make([]*entity.Transaction, 0, 30)
	for day := 0; day < 30; day++ {
		txs = append(txs, saleOnDay(product.ID, day, 2))
	}

	f.productRepo.EXPECT().FindByID(mock.Anything, product.ID, false).Return(product, nil)
	f.txRepo.EXPECT().
		FindByProductInWindow(mock.Anything, product.ID, mock.Anything, mock.Anything).
		Return(txs, nil)

	forecast, err := f.service.ForecastStock(context.Background(), product.ID, 14)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, forecast.AvgDailySales, 1e-9)
	assert.Zero(t, forecast.Trend)
	require.Len(t, forecast.Days, 14)

	// Flat 2 units/day drains 20 units in exactly 10 days.
	assert.InDelta(t, 18, forecast.Days[0].PredictedStock, 1e-9)
	assert.Equal(t, usecase.StockRiskLow, forecast.Days[0].Risk)
	assert.InDelta(t, 10, forecast.Days[4].PredictedStock, 1e-9)
	assert.Equal(t, usecase.StockRiskHigh, forecast.Days[4].Risk)
	assert.Zero(t, forecast.Days[9].PredictedStock)
	assert.Equal(t, usecase.StockRiskCritical, forecast.Days[9].Risk)

	require.NotNil(t, forecast.DaysUntilStockout)
	assert.Equal(t, 10, *forecast.DaysUntilStockout)
}

func TestInventoryService_ForecastStock_TrendFromWeekAverages(t *testing.T) {
	f := createTestInventoryService(t)

	product := &entity.Product{ID: uuid.New(), Name: "Notebook", StockQuantity: 500}
	txs := make([]*entity.Transaction, 0, 14)
	// One unit/day for the first selling week, two for the last: the trend
	// is a +100% fractional change.
	for day := 0; day < 7; day++ {
		txs = append(txs, saleOnDay(product.ID, day, 1))
	}
	for day := 23; day < 30; day++ {
		txs = append(txs, saleOnDay(product.ID, day, 2))
	}

	f.productRepo.EXPECT().FindByID(mock.Anything, product.ID, false).Return(product, nil)
	f.txRepo.EXPECT().
		FindByProductInWindow(mock.Anything, product.ID, mock.Anything, mock.Anything).
		Return(txs, nil)

	forecast, err := f.service.ForecastStock(context.Background(), product.ID, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, forecast.Trend, 1e-9)
	assert.InDelta(t, 21.0/30, forecast.AvgDailySales, 1e-9)
	assert.Nil(t, forecast.DaysUntilStockout)
}

func TestInventoryService_ForecastStock_SparseHistoryHasNoTrend(t *testing.T) {
	f := createTestInventoryService(t)

	product := &entity.Product{ID: uuid.New(), Name: "Lamp", StockQuantity: 40}
	txs := []*entity.Transaction{
		saleOnDay(product.ID, 2, 5),
		saleOnDay(product.ID, 10, 8),
		saleOnDay(product.ID, 25, 2),
	}

	f.productRepo.EXPECT().FindByID(mock.Anything, product.ID, false).Return(product, nil)
	f.txRepo.EXPECT().
		FindByProductInWindow(mock.Anything, product.ID, mock.Anything, mock.Anything).
		Return(txs, nil)

	forecast, err := f.service.ForecastStock(context.Background(), product.ID, 3)
	require.NoError(t, err)
	assert.Zero(t, forecast.Trend)
	assert.InDelta(t, 0.5, forecast.AvgDailySales, 1e-9)
}

func TestInventoryService_RankSuppliers(t *testing.T) {
	f := createTestInventoryService(t)

	fastNet60 := &entity.Supplier{ID: uuid.New(), Name: "Northwind", ReliabilityScore: 0.9, AverageDeliveryDays: 7, PaymentTerms: entity.PaymentTermsNet60}
	instantPrepaid := &entity.Supplier{ID: uuid.New(), Name: "Acme", ReliabilityScore: 1.0, AverageDeliveryDays: 0, PaymentTerms: entity.PaymentTermsPrepaid}
	slowUnknownTerms := &entity.Supplier{ID: uuid.New(), Name: "Oceanic", ReliabilityScore: 0.7, AverageDeliveryDays: 20, PaymentTerms: ""}
	unreliable := &entity.Supplier{ID: uuid.New(), Name: "Flaky", ReliabilityScore: 0.6, AverageDeliveryDays: 1, PaymentTerms: entity.PaymentTermsNet60}

	f.supplierRepo.EXPECT().
		FindAll(mock.Anything).
		Return([]*entity.Supplier{fastNet60, instantPrepaid, slowUnknownTerms, unreliable}, nil)

	ranking, err := f.service.RankSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking.Suppliers, 3)

	// 0.9*40 + (1-7/14)*30 + 30 = 81 beats 1.0*40 + 30 + 10 = 80.
	require.NotNil(t, ranking.Best)
	assert.Equal(t, fastNet60.ID, ranking.Best.Supplier.ID)
	assert.InDelta(t, 81, ranking.Best.Score, 1e-9)
	assert.Equal(t, instantPrepaid.ID, ranking.Suppliers[1].Supplier.ID)
	assert.InDelta(t, 80, ranking.Suppliers[1].Score, 1e-9)

	// Delivery days cap at 14 and unknown terms default to Net 30.
	assert.Equal(t, slowUnknownTerms.ID, ranking.Suppliers[2].Supplier.ID)
	assert.Zero(t, ranking.Suppliers[2].DeliveryScore)
	assert.InDelta(t, 20, ranking.Suppliers[2].CostScore, 1e-9)
	assert.InDelta(t, 48, ranking.Suppliers[2].Score, 1e-9)
}

func TestInventoryService_RankSuppliers_Empty(t *testing.T) {
	f := createTestInventoryService(t)

	f.supplierRepo.EXPECT().FindAll(mock.Anything).Return(nil, nil)

	ranking, err := f.service.RankSuppliers(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ranking.Best)
	assert.Empty(t, ranking.Suppliers)
}

func TestInventoryService_GenerateReorderSuggestions_SingleBatchedQuery(t *testing.T) {
	f := createTestInventoryService(t)

	fastSupplier := &entity.Supplier{ID: uuid.New(), Name: "Acme", AverageDeliveryDays: 4}
	slowSupplier := &entity.Supplier{ID: uuid.New(), Name: "Oceanic", AverageDeliveryDays: 20}

	outOfStock := &entity.Product{ID: uuid.New(), Name: "Charger", SKU: "CHG-1", StockQuantity: 0}
	nearlyOut := &entity.Product{ID: uuid.New(), Name: "Cable", SKU: "CBL-2", StockQuantity: 5, SupplierID: &fastSupplier.ID, Supplier: fastSupplier}
	healthy := &entity.Product{ID: uuid.New(), Name: "Case", SKU: "CSE-3", StockQuantity: 45}
	slowMover := &entity.Product{ID: uuid.New(), Name: "Stand", SKU: "STD-4", StockQuantity: 10, SupplierID: &slowSupplier.ID, Supplier: slowSupplier}

	candidates := []*entity.Product{outOfStock, nearlyOut, healthy, slowMover}
	f.productRepo.EXPECT().FindLowStock(mock.Anything, 50).Return(candidates, nil)

	var batchedIDs []uuid.UUID
	f.txRepo.EXPECT().
		BatchSalesByProduct(mock.Anything, mock.AnythingOfType("[]uuid.UUID"), mock.Anything).
		RunAndReturn(func(ctx context.Context, ids []uuid.UUID, since time.Time) (map[uuid.UUID]int, error) {
			batchedIDs = ids
			return map[uuid.UUID]int{
				outOfStock.ID: 60,
				nearlyOut.ID:  60,
				healthy.ID:    30,
				slowMover.ID:  30,
			}, nil
		}).
		Times(1)

	suggestions, err := f.service.GenerateReorderSuggestions(context.Background())
	require.NoError(t, err)

	// All candidates go through the one batched sales lookup.
	assert.Len(t, batchedIDs, 4)

	// The healthy product sits above its reorder point and is excluded; the
	// rest sort by urgency.
	require.Len(t, suggestions, 3)
	assert.Equal(t, outOfStock.ID, suggestions[0].ProductID)
	assert.Equal(t, usecase.ReorderUrgencyCritical, suggestions[0].Urgency)
	assert.Equal(t, nearlyOut.ID, suggestions[1].ProductID)
	assert.Equal(t, usecase.ReorderUrgencyHigh, suggestions[1].Urgency)
	assert.Equal(t, slowMover.ID, suggestions[2].ProductID)
	assert.Equal(t, usecase.ReorderUrgencyMedium, suggestions[2].Urgency)

	// avg 2/day at the default 7-day lead plus 3-day buffer.
	assert.Equal(t, 20, suggestions[0].ReorderPoint)
	assert.Equal(t, 60, suggestions[0].RecommendedQuantity)
	assert.Equal(t, 7, suggestions[0].LeadTimeDays)

	assert.Equal(t, 4, suggestions[1].LeadTimeDays)
	assert.Equal(t, "Acme", suggestions[1].SupplierName)
	assert.Equal(t, 14, suggestions[1].ReorderPoint)

	assert.Equal(t, 20, suggestions[2].LeadTimeDays)
	assert.Equal(t, 23, suggestions[2].ReorderPoint)
}

func TestInventoryService_GenerateReorderSuggestions_NoCandidates(t *testing.T) {
	f := createTestInventoryService(t)

	f.productRepo.EXPECT().FindLowStock(mock.Anything, 50).Return(nil, nil)

	suggestions, err := f.service.GenerateReorderSuggestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestInventoryService_AnalyzeSeasonality(t *testing.T) {
	f := createTestInventoryService(t)

	product := &entity.Product{ID: uuid.New(), Name: "Espresso Beans"}

	// 2026-05-01 is a Friday; two Friday evening spikes and one quiet
	// Monday morning sale.
	friday := time.Date(2026, 4, 24, 19, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	txs := []*entity.Transaction{
		{ID: uuid.New(), ProductID: product.ID, Quantity: 6, Status: entity.TransactionStatusCompleted, Timestamp: friday},
		{ID: uuid.New(), ProductID: product.ID, Quantity: 4, Status: entity.TransactionStatusCompleted, Timestamp: friday.Add(-7 * 24 * time.Hour)},
		{ID: uuid.New(), ProductID: product.ID, Quantity: 2, Status: entity.TransactionStatusCompleted, Timestamp: monday},
	}

	f.productRepo.EXPECT().FindByID(mock.Anything, product.ID, false).Return(product, nil)
	f.txRepo.EXPECT().
		FindByProductInWindow(mock.Anything, product.ID, time.Time{}, inventoryNow).
		Return(txs, nil)

	pattern, err := f.service.AnalyzeSeasonality(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Friday, pattern.PeakWeekday)
	assert.Equal(t, 19, pattern.PeakHour)
	assert.Equal(t, 10, pattern.UnitsByWeekday[time.Friday])
	assert.Equal(t, 2, pattern.UnitsByWeekday[time.Monday])
	assert.Equal(t, 10, pattern.UnitsByHour[19])
	assert.Contains(t, pattern.Recommendation, "Friday")
	assert.Contains(t, pattern.Recommendation, "19:00")
}

func TestInventoryService_AnalyzeSeasonality_NoHistory(t *testing.T) {
	f := createTestInventoryService(t)

	product := &entity.Product{ID: uuid.New(), Name: "New Arrival"}
	f.productRepo.EXPECT().FindByID(mock.Anything, product.ID, false).Return(product, nil)
	f.txRepo.EXPECT().
		FindByProductInWindow(mock.Anything, product.ID, time.Time{}, inventoryNow).
		Return(nil, nil)

	pattern, err := f.service.AnalyzeSeasonality(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, pattern.PeakWeekday)
	assert.Zero(t, pattern.PeakHour)
	assert.Contains(t, pattern.Recommendation, "no sales history")
}
