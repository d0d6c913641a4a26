package usecase

import (
	"context"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// Stock risk levels for a forecast day.
const (
	StockRiskCritical = "critical" // Predicted stock is exhausted.
	StockRiskHigh     = "high"     // Predicted stock at or below 10 units.
	StockRiskLow      = "low"
)

// DailyStockForecast is one projected day of stock depletion.
type DailyStockForecast struct {
	Day            int     `json:"day"` // 1-based day offset from now.
	PredictedStock float64 `json:"predicted_stock"`
	Risk           string  `json:"risk"`
}

// StockForecast is the depletion projection for one product.
type StockForecast struct {
	ProductID         uuid.UUID             `json:"product_id"`
	ProductName       string                `json:"product_name"`
	CurrentStock      int                   `json:"current_stock"`
	AvgDailySales     float64               `json:"avg_daily_sales"`
	Trend             float64               `json:"trend"` // Fractional change of last-7-day vs first-7-day average; 0 with under 7 days of data.
	Days              []*DailyStockForecast `json:"days"`
	DaysUntilStockout *int                  `json:"days_until_stockout"` // First day predicted stock reaches 0; nil if never within the horizon.
}

// SupplierScore is one supplier's composite ranking entry.
type SupplierScore struct {
	Supplier      *entity.Supplier `json:"supplier"`
	Score         float64          `json:"score"`          // reliability*40 + delivery*30 + cost score.
	DeliveryScore float64          `json:"delivery_score"` // (1 - min(avgDeliveryDays,14)/14) * 30.
	CostScore     float64          `json:"cost_score"`     // Payment-terms-derived component.
}

// SupplierRanking holds the top suppliers by composite score.
type SupplierRanking struct {
	Best      *SupplierScore   `json:"best"`
	Suppliers []*SupplierScore `json:"suppliers"` // Top 5 in descending score order.
}

// Reorder urgency levels, most urgent first in sorted output.
const (
	ReorderUrgencyCritical = "critical" // Out of stock now.
	ReorderUrgencyHigh     = "high"     // Under three days of cover left.
	ReorderUrgencyMedium   = "medium"
)

// ReorderSuggestion is one product's reorder recommendation.
type ReorderSuggestion struct {
	ProductID           uuid.UUID  `json:"product_id"`
	ProductName         string     `json:"product_name"`
	SKU                 string     `json:"sku"`
	CurrentStock        int        `json:"current_stock"`
	AvgDailySales       float64    `json:"avg_daily_sales"`
	LeadTimeDays        int        `json:"lead_time_days"` // Supplier average delivery days, default 7 when unknown.
	ReorderPoint        int        `json:"reorder_point"`
	RecommendedQuantity int        `json:"recommended_quantity"` // Roughly 30 days of cover.
	Urgency             string     `json:"urgency"`
	SupplierID          *uuid.UUID `json:"supplier_id"`
	SupplierName        string     `json:"supplier_name,omitempty"`
}

// SeasonalPattern aggregates one product's historical sales by day-of-week
// and hour-of-day.
type SeasonalPattern struct {
	ProductID      uuid.UUID    `json:"product_id"`
	UnitsByWeekday [7]int       `json:"units_by_weekday"` // Sunday-indexed, matching time.Weekday.
	UnitsByHour    [24]int      `json:"units_by_hour"`
	PeakWeekday    time.Weekday `json:"peak_weekday"`
	PeakHour       int          `json:"peak_hour"`
	Recommendation string       `json:"recommendation"`
}

// InventoryUsecase defines the inventory forecast engine's contract.
type InventoryUsecase interface {
	// ForecastStock projects a product's stock depletion for the given
	// number of days using the trailing 30-day sales window.
	ForecastStock(ctx context.Context, productID uuid.UUID, days int) (*StockForecast, error)

	// RankSuppliers scores suppliers with reliability >= 0.7 and returns
	// the top 5 plus the best.
	RankSuppliers(ctx context.Context) (*SupplierRanking, error)

	// GenerateReorderSuggestions evaluates every product with stock at or
	// below the low-stock threshold and returns reorder suggestions sorted
	// by urgency. Sales lookups for all candidates go through one batched
	// query; implementations must not fan out per product.
	GenerateReorderSuggestions(ctx context.Context) ([]*ReorderSuggestion, error)

	// AnalyzeSeasonality aggregates one product's completed sales by
	// day-of-week and hour-of-day.
	AnalyzeSeasonality(ctx context.Context, productID uuid.UUID) (*SeasonalPattern, error)
}
