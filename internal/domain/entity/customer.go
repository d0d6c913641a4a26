// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyTier enumerates the customer loyalty program tiers.
type LoyaltyTier string

// Loyalty tiers, ordered from none upward. The churn engine uses the tier to
// pick a retention action for at-risk customers.
const (
	LoyaltyTierNone     LoyaltyTier = "none"
	LoyaltyTierBronze   LoyaltyTier = "bronze"
	LoyaltyTierSilver   LoyaltyTier = "silver"
	LoyaltyTierGold     LoyaltyTier = "gold"
	LoyaltyTierPlatinum LoyaltyTier = "platinum"
)

// IsHighValue reports whether the tier qualifies for personal VIP outreach
// instead of automated win-back campaigns.
func (t LoyaltyTier) IsHighValue() bool {
	return t == LoyaltyTierGold || t == LoyaltyTierPlatinum
}

// Customer represents a registered buyer. The analytics core only reads this
// entity; TotalSpent and RiskScore are maintained by the order flow and the
// external risk pipeline respectively.
type Customer struct {
	ID               uuid.UUID   `json:"id"`                // The Global Unique Identifier (GUID) for the customer.
	Email            string      `json:"email"`             // Unique contact email.
	FirstName        string      `json:"first_name"`        // Given name.
	LastName         string      `json:"last_name"`         // Family name.
	RegistrationDate time.Time   `json:"registration_date"` // When the account was created.
	TotalSpent       float64     `json:"total_spent"`       // Lifetime spend, monotonically non-decreasing.
	RiskScore        float64     `json:"risk_score"`        // Externally maintained risk estimate in [0, 1].
	LoyaltyTier      LoyaltyTier `json:"loyalty_tier"`      // Current loyalty program tier, defaults to none.
	Transactions     []*Transaction `json:"transactions,omitempty"` // Eager-loaded purchase history for population-wide analytics.
	CreatedAt        time.Time   `json:"created_at"`        // Timestamp of when this record was created.
	UpdatedAt        time.Time   `json:"updated_at"`        // Timestamp of the last modification.
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}

	return c.FirstName + " " + c.LastName
}
