package usecase

import (
	"context"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// RFMScores holds the three 1-5 component scores of one customer.
type RFMScores struct {
	Recency   int `json:"recency"`
	Frequency int `json:"frequency"`
	Monetary  int `json:"monetary"`
}

// Total returns the summed R+F+M score used for the top-customer ranking.
func (s RFMScores) Total() int {
	return s.Recency + s.Frequency + s.Monetary
}

// Code renders the scores as the compact three-digit RFM code, e.g. "545".
func (s RFMScores) Code() string {
	digits := []byte{byte('0' + s.Recency), byte('0' + s.Frequency), byte('0' + s.Monetary)}

	return string(digits)
}

// RFMCustomer is one customer's row in the segmentation report.
type RFMCustomer struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	RecencyDays  *int      `json:"recency_days"` // Days since most recent completed transaction; nil if none.
	Frequency    int       `json:"frequency"`    // Count of completed transactions.
	Monetary     float64   `json:"monetary"`     // Sum of completed transaction amounts.
	Scores       RFMScores `json:"scores"`
	RFMCode      string    `json:"rfm_code"`
	Segment      string    `json:"segment"`
}

// RFMReport is the full segmentation output.
type RFMReport struct {
	Customers     []*RFMCustomer `json:"customers"`
	SegmentCounts map[string]int `json:"segment_counts"`
	TopCustomers  []*RFMCustomer `json:"top_customers"` // Top 20 by summed R+F+M score.
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Churn risk tiers.
const (
	ChurnRiskCritical = "critical"
	ChurnRiskHigh     = "high"
	ChurnRiskMedium   = "medium"
)

// ChurnRiskCustomer is one at-risk customer in the churn report. Customers
// whose days-since-last-purchase ratio stays at or below 1.5x their average
// interval are not at risk and are excluded entirely.
type ChurnRiskCustomer struct {
	CustomerID            uuid.UUID          `json:"customer_id"`
	Email                 string             `json:"email"`
	Name                  string             `json:"name"`
	LoyaltyTier           entity.LoyaltyTier `json:"loyalty_tier"`
	DaysSinceLastPurchase float64            `json:"days_since_last_purchase"`
	AverageIntervalDays   float64            `json:"average_interval_days"`
	RiskTier              string             `json:"risk_tier"`
	ChurnProbability      float64            `json:"churn_probability"` // One of 0.4, 0.7, 0.9.
	SuggestedAction       string             `json:"suggested_action"`
}

// ChurnReport is the churn detection output.
type ChurnReport struct {
	AtRisk      []*ChurnRiskCustomer `json:"at_risk"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// CLV confidence labels.
const (
	CLVConfidenceHigh   = "high"   // 10 or more transactions.
	CLVConfidenceMedium = "medium" // 5 or more transactions.
	CLVConfidenceLow    = "low"
)

// CLVPrediction is the projected lifetime value of one customer over the
// assumed 24-month horizon.
type CLVPrediction struct {
	CustomerID        uuid.UUID `json:"customer_id"`
	TransactionCount  int       `json:"transaction_count"`
	AverageOrderValue float64   `json:"average_order_value"`
	PurchaseFrequency float64   `json:"purchase_frequency"` // Orders per active month.
	MonthsActive      int       `json:"months_active"`      // Floored at 1.
	PredictedCLV      float64   `json:"predicted_clv"`
	Confidence        string    `json:"confidence"`
}

// ProductRecommendation is one recommended product with the evidence that
// ranked it.
type ProductRecommendation struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	// Weight is the ranking signal: units sold for best sellers, similar
	// buyer purchase count for collaborative picks, price for category picks.
	Weight float64 `json:"weight"`
	Reason string  `json:"reason"`
}

// RecommendationSet is the recommendation output for one customer. New
// customers get BestSellers only; returning customers get the two parallel
// lists instead.
type RecommendationSet struct {
	CustomerID    uuid.UUID                `json:"customer_id"`
	IsNewCustomer bool                     `json:"is_new_customer"`
	BestSellers   []*ProductRecommendation `json:"best_sellers,omitempty"`
	Collaborative []*ProductRecommendation `json:"collaborative,omitempty"`
	CategoryBased []*ProductRecommendation `json:"category_based,omitempty"`
}

// CustomerAnalyticsUsecase defines the customer analytics engine's contract.
// All operations are read-only analyses over the customer population,
// intended for periodic/dashboard use rather than per-request hot paths.
type CustomerAnalyticsUsecase interface {
	// SegmentCustomers computes RFM segmentation over the whole population.
	SegmentCustomers(ctx context.Context) (*RFMReport, error)

	// DetectChurnRisk finds customers overdue for their next purchase.
	DetectChurnRisk(ctx context.Context) (*ChurnReport, error)

	// PredictCLV projects one customer's lifetime value. A customer with no
	// transactions yields CLV 0 with low confidence, not an error.
	PredictCLV(ctx context.Context, customerID uuid.UUID) (*CLVPrediction, error)

	// Recommend produces up to limit recommendations per list for one
	// customer.
	Recommend(ctx context.Context, customerID uuid.UUID, limit int) (*RecommendationSet, error)
}
