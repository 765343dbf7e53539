package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox event types emitted on workflow transitions.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCompleted = "booking.completed"
	EventPaymentSettled   = "payment.settled"
)

// Outbox event statuses.
const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	OutboxStatusFailed    = "failed"
)

// OutboxEvent is a workflow transition recorded for asynchronous delivery
// to downstream collaborators via the broker.
type OutboxEvent struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	EventType   string          `db:"event_type" json:"event_type"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Status      string          `db:"status" json:"status"`
	RetryCount  int             `db:"retry_count" json:"retry_count"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	PublishedAt *time.Time      `db:"published_at" json:"published_at,omitempty"`
}
