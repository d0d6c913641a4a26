package impl

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultLowStockThreshold = 50
	defaultLeadTimeDays      = 7
	defaultSafetyBufferDays  = 3
	defaultSalesWindowDays   = 30
	defaultForecastDays      = 30

	supplierReliabilityFloor = 0.7
	supplierRankSize         = 5
	deliveryDaysCeiling      = 14.0
	trendMinSampleDays       = 7

	highRiskStockLevel = 10.0
)

// costScoreByTerms maps payment terms to the cost component of the supplier
// score. Longer terms score higher; Net 30 is the default for unknown terms.
var costScoreByTerms = map[string]float64{
	entity.PaymentTermsPrepaid: 10,
	entity.PaymentTermsNet30:   20,
	entity.PaymentTermsNet45:   25,
	entity.PaymentTermsNet60:   30,
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	txRepo       repository.TransactionRepository
	cfg          *config.Config
	now          func() time.Time
}

// NewInventoryService creates a new inventory forecast engine instance.
func NewInventoryService(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	txRepo repository.TransactionRepository,
	cfg *config.Config,
) usecase.InventoryUsecase {
	// If Inventory is not configured, provide a default configuration
	if cfg.Inventory == nil {
		cfg.Inventory = &config.InventoryConfig{}
	}
	if cfg.Inventory.LowStockThreshold <= 0 {
		cfg.Inventory.LowStockThreshold = defaultLowStockThreshold
	}
	if cfg.Inventory.DefaultLeadTimeDays <= 0 {
		cfg.Inventory.DefaultLeadTimeDays = defaultLeadTimeDays
	}
	if cfg.Inventory.SafetyBufferDays <= 0 {
		cfg.Inventory.SafetyBufferDays = defaultSafetyBufferDays
	}
	if cfg.Inventory.SalesWindowDays <= 0 {
		cfg.Inventory.SalesWindowDays = defaultSalesWindowDays
	}
	if cfg.Inventory.DefaultForecastDays <= 0 {
		cfg.Inventory.DefaultForecastDays = defaultForecastDays
	}

	return &inventoryService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		txRepo:       txRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *inventoryService) ForecastStock(ctx context.Context, productID uuid.UUID, days int) (*usecase.StockForecast, error) {
	if productID == uuid.Nil {
		return nil, errors.New("product id must not be nil")
	}
	if days <= 0 {
		days = s.cfg.Inventory.DefaultForecastDays
	}

	product, err := s.productRepo.FindByID(ctx, productID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	now := s.now()
	windowDays := s.cfg.Inventory.SalesWindowDays
	start := now.AddDate(0, 0, -windowDays)
	txs, err := s.txRepo.FindByProductInWindow(ctx, productID, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales window: %w", err)
	}

	dailyUnits := bucketUnitsByDay(txs, start, windowDays)
	var totalUnits int
	for _, units := range dailyUnits {
		totalUnits += units
	}
	avgDailySales := float64(totalUnits) / float64(windowDays)
	trend := salesTrend(dailyUnits)

	forecast := &usecase.StockForecast{
		ProductID:     product.ID,
		ProductName:   product.Name,
		CurrentStock:  product.StockQuantity,
		AvgDailySales: avgDailySales,
		Trend:         trend,
		Days:          make([]*usecase.DailyStockForecast, 0, days),
	}

	// The trend is damped by day/30 so it phases in over the projection
	// horizon. The formula is carried over from the original depletion
	// model; keep it intact for comparable forecasts.
	prev := float64(product.StockQuantity)
	for d := 1; d <= days; d++ {
		depletion := avgDailySales * (1 + trend*float64(d)/30)
		predicted := prev - depletion
		if predicted < 0 {
			predicted = 0
		}

		risk := usecase.StockRiskLow
		switch {
		case predicted <= 0:
			risk = usecase.StockRiskCritical
		case predicted <= highRiskStockLevel:
			risk = usecase.StockRiskHigh
		}

		forecast.Days = append(forecast.Days, &usecase.DailyStockForecast{
			Day:            d,
			PredictedStock: predicted,
			Risk:           risk,
		})
		if predicted == 0 && forecast.DaysUntilStockout == nil {
			day := d
			forecast.DaysUntilStockout = &day
		}
		prev = predicted
	}

	return forecast, nil
}

func (s *inventoryService) RankSuppliers(ctx context.Context) (*usecase.SupplierRanking, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	scored := make([]*usecase.SupplierScore, 0, len(suppliers))
	for _, supplier := range suppliers {
		if supplier.ReliabilityScore < supplierReliabilityFloor {
			continue
		}

		deliveryScore := (1 - math.Min(float64(supplier.AverageDeliveryDays), deliveryDaysCeiling)/deliveryDaysCeiling) * 30
		costScore, ok := costScoreByTerms[supplier.PaymentTerms]
		if !ok {
			costScore = costScoreByTerms[entity.PaymentTermsNet30]
		}

		scored = append(scored, &usecase.SupplierScore{
			Supplier:      supplier,
			Score:         supplier.ReliabilityScore*40 + deliveryScore + costScore,
			DeliveryScore: deliveryScore,
			CostScore:     costScore,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}

		return scored[i].Supplier.Name < scored[j].Supplier.Name
	})

	ranking := &usecase.SupplierRanking{Suppliers: scored}
	if len(scored) > 0 {
		ranking.Best = scored[0]
	}
	if len(scored) > supplierRankSize {
		ranking.Suppliers = scored[:supplierRankSize]
	}

	return ranking, nil
}

func (s *inventoryService) GenerateReorderSuggestions(ctx context.Context) ([]*usecase.ReorderSuggestion, error) {
	products, err := s.productRepo.FindLowStock(ctx, s.cfg.Inventory.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load low-stock products: %w", err)
	}
	if len(products) == 0 {
		return []*usecase.ReorderSuggestion{}, nil
	}

	// One batched aggregate for every candidate; fanning out one sales
	// query per product is a contract violation, not just a slow path.
	ids := make([]uuid.UUID, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}
	since := s.now().AddDate(0, 0, -s.cfg.Inventory.SalesWindowDays)
	sales, err := s.txRepo.BatchSalesByProduct(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate candidate sales: %w", err)
	}

	suggestions := make([]*usecase.ReorderSuggestion, 0, len(products))
	for _, product := range products {
		avgDailySales := float64(sales[product.ID]) / float64(s.cfg.Inventory.SalesWindowDays)

		leadTime := s.cfg.Inventory.DefaultLeadTimeDays
		var supplierName string
		if product.Supplier != nil {
			leadTime = product.Supplier.AverageDeliveryDays
			supplierName = product.Supplier.Name
		}

		reorderPoint := int(math.Ceil(avgDailySales * float64(leadTime+s.cfg.Inventory.SafetyBufferDays)))
		if product.StockQuantity > reorderPoint {
			continue
		}

		urgency := usecase.ReorderUrgencyMedium
		switch {
		case product.StockQuantity == 0:
			urgency = usecase.ReorderUrgencyCritical
		case float64(product.StockQuantity) <= avgDailySales*3:
			urgency = usecase.ReorderUrgencyHigh
		}

		suggestions = append(suggestions, &usecase.ReorderSuggestion{
			ProductID:           product.ID,
			ProductName:         product.Name,
			SKU:                 product.SKU,
			CurrentStock:        product.StockQuantity,
			AvgDailySales:       avgDailySales,
			LeadTimeDays:        leadTime,
			ReorderPoint:        reorderPoint,
			RecommendedQuantity: int(math.Ceil(avgDailySales * float64(s.cfg.Inventory.SalesWindowDays))),
			Urgency:             urgency,
			SupplierID:          product.SupplierID,
			SupplierName:        supplierName,
		})
	}

	rank := map[string]int{
		usecase.ReorderUrgencyCritical: 0,
		usecase.ReorderUrgencyHigh:     1,
		usecase.ReorderUrgencyMedium:   2,
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if rank[suggestions[i].Urgency] != rank[suggestions[j].Urgency] {
			return rank[suggestions[i].Urgency] < rank[suggestions[j].Urgency]
		}

		return suggestions[i].CurrentStock < suggestions[j].CurrentStock
	})

	return suggestions, nil
}

func (s *inventoryService) AnalyzeSeasonality(ctx context.Context, productID uuid.UUID) (*usecase.SeasonalPattern, error) {
	if productID == uuid.Nil {
		return nil, errors.New("product id must not be nil")
	}

	product, err := s.productRepo.FindByID(ctx, productID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	txs, err := s.txRepo.FindByProductInWindow(ctx, productID, time.Time{}, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	pattern := &usecase.SeasonalPattern{ProductID: product.ID}
	for _, tx := range txs {
		pattern.UnitsByWeekday[tx.Timestamp.Weekday()] += tx.Quantity
		pattern.UnitsByHour[tx.Timestamp.Hour()] += tx.Quantity
	}

	if len(txs) == 0 {
		pattern.Recommendation = "no sales history yet; revisit once the product has recorded sales"

		return pattern, nil
	}

	for day := range pattern.UnitsByWeekday {
		if pattern.UnitsByWeekday[day] > pattern.UnitsByWeekday[pattern.PeakWeekday] {
			pattern.PeakWeekday = time.Weekday(day)
		}
	}
	for hour := range pattern.UnitsByHour {
		if pattern.UnitsByHour[hour] > pattern.UnitsByHour[pattern.PeakHour] {
			pattern.PeakHour = hour
		}
	}
	pattern.Recommendation = fmt.Sprintf(
		"sales peak on %s around %02d:00; schedule restocks and promotions ahead of that window",
		pattern.PeakWeekday, pattern.PeakHour,
	)

	return pattern, nil
}

// bucketUnitsByDay sums units sold per day offset within the trailing window.
func bucketUnitsByDay(txs []*entity.Transaction, start time.Time, windowDays int) []int {
	daily := make([]int, windowDays)
	for _, tx := range txs {
		day := int(tx.Timestamp.Sub(start).Hours() / 24)
		if day < 0 || day >= windowDays {
			continue
		}
		daily[day] += tx.Quantity
	}

	return daily
}

// salesTrend compares the average of the last seven selling days against the
// first seven. Fewer than seven days with sales yields no trend signal.
func salesTrend(dailyUnits []int) float64 {
	selling := make([]int, 0, len(dailyUnits))
	for _, units := range dailyUnits {
		if units > 0 {
			selling = append(selling, units)
		}
	}
	if len(selling) < trendMinSampleDays {
		return 0
	}

	var firstWeek, lastWeek float64
	for i := 0; i < trendMinSampleDays; i++ {
		firstWeek += float64(selling[i])
		lastWeek += float64(selling[len(selling)-trendMinSampleDays+i])
	}
	firstWeek /= trendMinSampleDays
	lastWeek /= trendMinSampleDays

	return (lastWeek - firstWeek) / firstWeek
}
