package service

import (
	"context"

	"pulse/internal/domain/entity"
)

// AlertEvent is the payload broadcast to the notification/dashboard channel
// when an engine raises an alert. For fraud alerts it carries the scored
// transaction and the full analysis so subscribers can render detail without
// a follow-up query.
type AlertEvent struct {
	RequestID   string                `json:"request_id,omitempty"` // For distributed tracing
	EventType   string                `json:"event_type"`           // e.g., "fraud.alert"
	Alert       *entity.Alert         `json:"alert"`
	Transaction *entity.Transaction   `json:"transaction,omitempty"`
	Analysis    *entity.FraudAnalysis `json:"analysis,omitempty"`
}

// AlertPublisher defines the interface for broadcasting alert events to the
// external fan-out channel. Publishing is fire-and-forget from the engines'
// point of view: implementations must tolerate the absence of any subscriber,
// and callers must never fail a scoring call on a publish error.
type AlertPublisher interface {
	// PublishAlertEvent publishes an alert event for async fan-out.
	PublishAlertEvent(ctx context.Context, event *AlertEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
