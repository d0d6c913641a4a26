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

// RFM segments, in cascade priority order.
const (
	segmentChampions     = "Champions"
	segmentLoyal         = "Loyal Customers"
	segmentNew           = "New Customers"
	segmentPotential     = "Potential Loyalists"
	segmentAtRisk        = "At Risk"
	segmentNeedAttention = "Need Attention"
	segmentLost          = "Lost"
	segmentBigSpenders   = "Big Spenders"
	segmentOthers        = "Others"
)

const (
	defaultCLVHorizonMonths   = 24
	defaultTopCustomerCount   = 20
	defaultRecommendLimit     = 5
	clvHighConfidenceMinTxns  = 10
	clvMedConfidenceMinTxns   = 5
	churnMinCompletedTxns     = 2
	sharedProductThreshold    = 2
	daysPerMonth              = 30
)

// Churn ratio boundaries (days since last purchase over average interval).
const (
	churnCriticalRatio = 3.0
	churnHighRatio     = 2.0
	churnMediumRatio   = 1.5
)

type customerAnalyticsService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txRepo       repository.TransactionRepository
	cfg          *config.Config
	now          func() time.Time
}

// NewCustomerAnalyticsService creates a new customer analytics engine instance.
func NewCustomerAnalyticsService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	cfg *config.Config,
) usecase.CustomerAnalyticsUsecase {
	// If Analytics is not configured, provide a default configuration
	if cfg.Analytics == nil {
		cfg.Analytics = &config.AnalyticsConfig{}
	}
	if cfg.Analytics.CLVHorizonMonths <= 0 {
		cfg.Analytics.CLVHorizonMonths = defaultCLVHorizonMonths
	}
	if cfg.Analytics.TopCustomerCount <= 0 {
		cfg.Analytics.TopCustomerCount = defaultTopCustomerCount
	}
	if cfg.Analytics.DefaultRecommendationLimit <= 0 {
		cfg.Analytics.DefaultRecommendationLimit = defaultRecommendLimit
	}

	return &customerAnalyticsService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRepo:       txRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

// rfmRaw is one customer's raw metrics before percentile scoring.
type rfmRaw struct {
	customer    *entity.Customer
	recencyDays int
	frequency   int
	monetary    float64
}

func (s *customerAnalyticsService) SegmentCustomers(ctx context.Context) (*usecase.RFMReport, error) {
	customers, err := s.customerRepo.FindAllWithTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer population: %w", err)
	}

	now := s.now()
	report := &usecase.RFMReport{
		Customers:     make([]*usecase.RFMCustomer, 0, len(customers)),
		SegmentCounts: make(map[string]int),
		GeneratedAt:   now,
	}

	scored := make([]*rfmRaw, 0, len(customers))
	for _, customer := range customers {
		raw, active := rfmMetrics(customer, now)
		if !active {
			// Zero completed transactions segments as Lost directly,
			// independent of population statistics.
			row := &usecase.RFMCustomer{
				CustomerID: customer.ID,
				Email:      customer.Email,
				Name:       customer.FullName(),
				Scores:     usecase.RFMScores{Recency: 1, Frequency: 1, Monetary: 1},
				RFMCode:    "111",
				Segment:    segmentLost,
			}
			report.Customers = append(report.Customers, row)
			report.SegmentCounts[segmentLost]++

			continue
		}
		scored = append(scored, raw)
	}

	// Percentile ranks are relative to the scored population; recency is
	// inverted so fewer days since last purchase ranks higher.
	recencies := make([]float64, len(scored))
	frequencies := make([]float64, len(scored))
	monetaries := make([]float64, len(scored))
	for i, raw := range scored {
		recencies[i] = float64(raw.recencyDays)
		frequencies[i] = float64(raw.frequency)
		monetaries[i] = float64(raw.monetary)
	}
	sort.Float64s(recencies)
	sort.Float64s(frequencies)
	sort.Float64s(monetaries)

	for _, raw := range scored {
		scores := usecase.RFMScores{
			Recency:   bandForPercentile(percentHigherIsWorse(recencies, float64(raw.recencyDays))),
			Frequency: bandForPercentile(percentLowerIsWorse(frequencies, float64(raw.frequency))),
			Monetary:  bandForPercentile(percentLowerIsWorse(monetaries, raw.monetary)),
		}
		segment := segmentFor(scores)
		recencyDays := raw.recencyDays

		row := &usecase.RFMCustomer{
			CustomerID:  raw.customer.ID,
			Email:       raw.customer.Email,
			Name:        raw.customer.FullName(),
			RecencyDays: &recencyDays,
			Frequency:   raw.frequency,
			Monetary:    raw.monetary,
			Scores:      scores,
			RFMCode:     scores.Code(),
			Segment:     segment,
		}
		report.Customers = append(report.Customers, row)
		report.SegmentCounts[segment]++
	}

	ranked := make([]*usecase.RFMCustomer, len(report.Customers))
	copy(ranked, report.Customers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Total() > ranked[j].Scores.Total()
	})
	if len(ranked) > s.cfg.Analytics.TopCustomerCount {
		ranked = ranked[:s.cfg.Analytics.TopCustomerCount]
	}
	report.TopCustomers = ranked

	return report, nil
}

func (s *customerAnalyticsService) DetectChurnRisk(ctx context.Context) (*usecase.ChurnReport, error) {
	customers, err := s.customerRepo.FindAllWithTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer population: %w", err)
	}

	now := s.now()
	report := &usecase.ChurnReport{
		AtRisk:      make([]*usecase.ChurnRiskCustomer, 0),
		GeneratedAt: now,
	}

	for _, customer := range customers {
		completed := completedTransactions(customer.Transactions)
		if len(completed) < churnMinCompletedTxns {
			continue
		}

		first, last := completed[0].Timestamp, completed[0].Timestamp
		for _, tx := range completed[1:] {
			if tx.Timestamp.Before(first) {
				first = tx.Timestamp
			}
			if tx.Timestamp.After(last) {
				last = tx.Timestamp
			}
		}

		daysSince := now.Sub(last).Hours() / 24
		avgInterval := last.Sub(first).Hours() / 24 / float64(len(completed)-1)

		// Same-day purchase bursts have a zero average interval; any gap at
		// all since then is maximally overdue.
		ratio := math.Inf(1)
		if avgInterval > 0 {
			ratio = daysSince / avgInterval
		} else if daysSince <= 0 {
			continue
		}

		tier, probability := churnTier(ratio)
		if tier == "" {
			continue
		}

		report.AtRisk = append(report.AtRisk, &usecase.ChurnRiskCustomer{
			CustomerID:            customer.ID,
			Email:                 customer.Email,
			Name:                  customer.FullName(),
			LoyaltyTier:           customer.LoyaltyTier,
			DaysSinceLastPurchase: daysSince,
			AverageIntervalDays:   avgInterval,
			RiskTier:              tier,
			ChurnProbability:      probability,
			SuggestedAction:       suggestedAction(tier, customer),
		})
	}

	sort.SliceStable(report.AtRisk, func(i, j int) bool {
		if report.AtRisk[i].ChurnProbability != report.AtRisk[j].ChurnProbability {
			return report.AtRisk[i].ChurnProbability > report.AtRisk[j].ChurnProbability
		}

		return report.AtRisk[i].DaysSinceLastPurchase > report.AtRisk[j].DaysSinceLastPurchase
	})

	return report, nil
}

func (s *customerAnalyticsService) PredictCLV(ctx context.Context, customerID uuid.UUID) (*usecase.CLVPrediction, error) {
	if customerID == uuid.Nil {
		return nil, errors.New("customer id must not be nil")
	}

	customer, err := s.customerRepo.FindByIDWithTransactions(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}

	completed := completedTransactions(customer.Transactions)
	prediction := &usecase.CLVPrediction{
		CustomerID:       customerID,
		TransactionCount: len(completed),
		Confidence:       usecase.CLVConfidenceLow,
	}
	if len(completed) == 0 {
		return prediction, nil
	}

	first := completed[0].Timestamp
	var total float64
	for _, tx := range completed {
		total += tx.TotalAmount
		if tx.Timestamp.Before(first) {
			first = tx.Timestamp
		}
	}

	monthsActive := int(s.now().Sub(first).Hours() / 24 / daysPerMonth)
	if monthsActive < 1 {
		monthsActive = 1
	}

	prediction.AverageOrderValue = total / float64(len(completed))
	prediction.MonthsActive = monthsActive
	prediction.PurchaseFrequency = float64(len(completed)) / float64(monthsActive)
	prediction.PredictedCLV = prediction.AverageOrderValue * prediction.PurchaseFrequency * float64(s.cfg.Analytics.CLVHorizonMonths)

	switch {
	case len(completed) >= clvHighConfidenceMinTxns:
		prediction.Confidence = usecase.CLVConfidenceHigh
	case len(completed) >= clvMedConfidenceMinTxns:
		prediction.Confidence = usecase.CLVConfidenceMedium
	}

	return prediction, nil
}

func (s *customerAnalyticsService) Recommend(ctx context.Context, customerID uuid.UUID, limit int) (*usecase.RecommendationSet, error) {
	if customerID == uuid.Nil {
		return nil, errors.New("customer id must not be nil")
	}
	if limit <= 0 {
		limit = s.cfg.Analytics.DefaultRecommendationLimit
	}

	customer, err := s.customerRepo.FindByIDWithTransactions(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}

	set := &usecase.RecommendationSet{CustomerID: customerID}

	purchased := purchasedProductSet(customer.Transactions)
	if len(purchased) == 0 {
		set.IsNewCustomer = true
		set.BestSellers, err = s.bestSellers(ctx, limit)
		if err != nil {
			return nil, err
		}

		return set, nil
	}

	set.Collaborative, err = s.collaborative(ctx, customerID, purchased, limit)
	if err != nil {
		return nil, err
	}
	set.CategoryBased, err = s.categoryBased(ctx, purchased, limit)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// bestSellers ranks the whole catalog by lifetime units sold.
func (s *customerAnalyticsService) bestSellers(ctx context.Context, limit int) ([]*usecase.ProductRecommendation, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}

	sales, err := s.txRepo.BatchSalesByProduct(ctx, ids, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return sales[products[i].ID] > sales[products[j].ID]
	})
	if len(products) > limit {
		products = products[:limit]
	}

	recs := make([]*usecase.ProductRecommendation, 0, len(products))
	for _, product := range products {
		recs = append(recs, &usecase.ProductRecommendation{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Weight:    float64(sales[product.ID]),
			Reason:    "best seller",
		})
	}

	return recs, nil
}

// collaborative finds products bought by customers who share at least two
// distinct purchased products with the target. The intersection scan is
// O(customers x history), which is acceptable for periodic batch use but
// must not sit on a per-request hot path.
func (s *customerAnalyticsService) collaborative(ctx context.Context, targetID uuid.UUID, purchased map[uuid.UUID]struct{}, limit int) ([]*usecase.ProductRecommendation, error) {
	population, err := s.customerRepo.FindAllWithTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer population: %w", err)
	}

	counts := make(map[uuid.UUID]int)
	for _, other := range population {
		if other.ID == targetID {
			continue
		}

		otherPurchased := purchasedProductSet(other.Transactions)
		shared := 0
		for id := range otherPurchased {
			if _, ok := purchased[id]; ok {
				shared++
			}
		}
		if shared < sharedProductThreshold {
			continue
		}

		for id := range otherPurchased {
			if _, ok := purchased[id]; !ok {
				counts[id]++
			}
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	candidateIDs := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		candidateIDs = append(candidateIDs, id)
	}
	candidates, err := s.productRepo.FindByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate products: %w", err)
	}

	inStock := make([]*entity.Product, 0, len(candidates))
	for _, product := range candidates {
		if product.InStock() {
			inStock = append(inStock, product)
		}
	}
	sort.SliceStable(inStock, func(i, j int) bool {
		if counts[inStock[i].ID] != counts[inStock[j].ID] {
			return counts[inStock[i].ID] > counts[inStock[j].ID]
		}

		return inStock[i].ID.String() < inStock[j].ID.String()
	})
	if len(inStock) > limit {
		inStock = inStock[:limit]
	}

	recs := make([]*usecase.ProductRecommendation, 0, len(inStock))
	for _, product := range inStock {
		recs = append(recs, &usecase.ProductRecommendation{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Weight:    float64(counts[product.ID]),
			Reason:    "bought by customers with similar purchases",
		})
	}

	return recs, nil
}

// categoryBased recommends the highest-priced in-stock products from the
// categories the target already buys, excluding already-purchased products.
func (s *customerAnalyticsService) categoryBased(ctx context.Context, purchased map[uuid.UUID]struct{}, limit int) ([]*usecase.ProductRecommendation, error) {
	purchasedIDs := make([]uuid.UUID, 0, len(purchased))
	for id := range purchased {
		purchasedIDs = append(purchasedIDs, id)
	}
	owned, err := s.productRepo.FindByIDs(ctx, purchasedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchased products: %w", err)
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, product := range owned {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	sort.Strings(categories)
	if len(categories) == 0 {
		return nil, nil
	}

	candidates, err := s.productRepo.FindInStockByCategories(ctx, categories)
	if err != nil {
		return nil, fmt.Errorf("failed to load category products: %w", err)
	}

	recs := make([]*usecase.ProductRecommendation, 0, limit)
	for _, product := range candidates {
		if _, ok := purchased[product.ID]; ok {
			continue
		}
		recs = append(recs, &usecase.ProductRecommendation{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Weight:    product.Price,
			Reason:    fmt.Sprintf("top pick in %s", product.Category),
		})
		if len(recs) == limit {
			break
		}
	}

	return recs, nil
}

// rfmMetrics computes the raw RFM inputs; active is false when the customer
// has no completed transactions.
func rfmMetrics(customer *entity.Customer, now time.Time) (*rfmRaw, bool) {
	completed := completedTransactions(customer.Transactions)
	if len(completed) == 0 {
		return nil, false
	}

	last := completed[0].Timestamp
	var monetary float64
	for _, tx := range completed {
		monetary += tx.TotalAmount
		if tx.Timestamp.After(last) {
			last = tx.Timestamp
		}
	}

	return &rfmRaw{
		customer:    customer,
		recencyDays: int(now.Sub(last).Hours() / 24),
		frequency:   len(completed),
		monetary:    monetary,
	}, true
}

// percentLowerIsWorse returns the share (0-100) of the sorted population with
// a strictly smaller value than v.
func percentLowerIsWorse(sortedAsc []float64, v float64) float64 {
	idx := sort.SearchFloat64s(sortedAsc, v)

	return float64(idx) * 100 / float64(len(sortedAsc))
}

// percentHigherIsWorse returns the share (0-100) of the sorted population
// with a strictly larger value than v. Used for recency, where fewer days
// since the last purchase ranks higher.
func percentHigherIsWorse(sortedAsc []float64, v float64) float64 {
	idx := sort.Search(len(sortedAsc), func(i int) bool { return sortedAsc[i] > v })

	return float64(len(sortedAsc)-idx) * 100 / float64(len(sortedAsc))
}

// bandForPercentile maps a percentile rank onto the 1-5 score bands.
func bandForPercentile(p float64) int {
	switch {
	case p >= 80:
		return 5
	case p >= 60:
		return 4
	case p >= 40:
		return 3
	case p >= 20:
		return 2
	default:
		return 1
	}
}

// segmentFor walks the priority-ordered segment cascade.
func segmentFor(s usecase.RFMScores) string {
	r, f, m := s.Recency, s.Frequency, s.Monetary
	switch {
	case r >= 4 && f >= 4 && m >= 4:
		return segmentChampions
	case r >= 4 && f >= 3 && m >= 3:
		return segmentLoyal
	case r >= 4 && f <= 2:
		return segmentNew
	case r >= 3 && f >= 3 && m >= 3:
		return segmentPotential
	case r <= 2 && f >= 4 && m >= 4:
		return segmentAtRisk
	case r <= 2 && f >= 2 && m >= 2:
		return segmentNeedAttention
	case r <= 2 && f <= 2 && m <= 2:
		return segmentLost
	case m >= 4:
		return segmentBigSpenders
	default:
		return segmentOthers
	}
}

func churnTier(ratio float64) (string, float64) {
	switch {
	case ratio > churnCriticalRatio:
		return usecase.ChurnRiskCritical, 0.9
	case ratio > churnHighRatio:
		return usecase.ChurnRiskHigh, 0.7
	case ratio > churnMediumRatio:
		return usecase.ChurnRiskMedium, 0.4
	default:
		return "", 0
	}
}

// suggestedAction picks the retention play from the (risk tier, loyalty
// tier) decision table.
func suggestedAction(tier string, customer *entity.Customer) string {
	switch tier {
	case usecase.ChurnRiskCritical:
		if customer.LoyaltyTier.IsHighValue() {
			return "personal VIP outreach"
		}

		return "win-back discount email"
	case usecase.ChurnRiskHigh:
		return "re-engagement email"
	default:
		return "include in next campaign"
	}
}

func completedTransactions(txs []*entity.Transaction) []*entity.Transaction {
	completed := make([]*entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsCompleted() {
			completed = append(completed, tx)
		}
	}

	return completed
}

// purchasedProductSet collects the distinct products in a customer's
// completed transactions.
func purchasedProductSet(txs []*entity.Transaction) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{})
	for _, tx := range txs {
		if tx.IsCompleted() {
			set[tx.ProductID] = struct{}{}
		}
	}

	return set
}
