// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider names recognized by the alert publisher factory.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// EventTypeFraudAlert is the broadcast event type for fraud alerts.
const EventTypeFraudAlert = "fraud.alert"
