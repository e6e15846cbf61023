// Package events publishes domain events once the writes behind them have committed.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys.
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
	MembershipUpgraded   = "membership.upgraded"
	MembershipRevoked    = "membership.revoked"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close() error
}

// Envelope is the message body put on the exchange.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func NewEnvelope(routingKey string, data any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }

type BookingEvent struct {
	BookingID      string   `json:"bookingId"`
	UserEmail      string   `json:"userEmail"`
	CourtID        string   `json:"courtId"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots,omitempty"`
	Status         string   `json:"status,omitempty"`
	PreviousStatus string   `json:"previousStatus,omitempty"`
}

type MembershipEvent struct {
	Email           string `json:"email"`
	BookingID       string `json:"bookingId,omitempty"`
	DeletedBookings int64  `json:"deletedBookings,omitempty"`
}
