// Package entity contains the core business objects of the project.
package entity

// FraudFlagType enumerates the closed set of fraud signal kinds. Each check
// in the scoring engine contributes at most one flag of its own type.
type FraudFlagType string

// Fraud flag types, in the fixed order the checks run.
const (
	FraudFlagAmountAnomaly FraudFlagType = "amount_anomaly"
	FraudFlagVelocity      FraudFlagType = "velocity"
	FraudFlagTimePattern   FraudFlagType = "time_pattern"
	FraudFlagCustomerRisk  FraudFlagType = "customer_risk"
	FraudFlagBotSignature  FraudFlagType = "bot_signature"
)

// FraudFlag is a single fraud signal with its fixed point contribution and a
// human-readable message. Flags are a closed tagged variant rather than an
// open dictionary so the persisted shape stays stable.
type FraudFlag struct {
	Type    FraudFlagType `json:"type"`    // Which check fired.
	Score   int           `json:"score"`   // Point contribution of this flag.
	Message string        `json:"message"` // Operator-facing description.
}

// FraudAnalysis is the result of scoring one transaction.
type FraudAnalysis struct {
	FraudScore   float64       `json:"fraud_score"`   // Aggregate score in [0, 1]; raw points above 100 saturate at 1.0.
	Flags        []FraudFlag   `json:"flags"`         // Flags in fixed check order: amount, velocity, time, customer, bot.
	IsSuspicious bool          `json:"is_suspicious"` // True iff FraudScore >= 0.5.
	Severity     AlertSeverity `json:"severity"`      // Severity bucket derived from FraudScore.
}

// Fraud score thresholds for the severity buckets. The mapping is monotone:
// a higher score never maps to a lower severity.
const (
	fraudSeverityCriticalThreshold = 0.8
	fraudSeverityHighThreshold     = 0.6
	fraudSeverityMediumThreshold   = 0.4

	// SuspiciousScoreThreshold is the score at or above which a transaction
	// is considered suspicious and an alert is raised.
	SuspiciousScoreThreshold = 0.5
)

// SeverityForFraudScore maps an aggregate fraud score to its alert severity
// bucket: critical >= 0.8, high >= 0.6, medium >= 0.4, otherwise low.
func SeverityForFraudScore(score float64) AlertSeverity {
	switch {
	case score >= fraudSeverityCriticalThreshold:
		return AlertSeverityCritical
	case score >= fraudSeverityHighThreshold:
		return AlertSeverityHigh
	case score >= fraudSeverityMediumThreshold:
		return AlertSeverityMedium
	default:
		return AlertSeverityLow
	}
}
