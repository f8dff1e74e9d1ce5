package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"asst/models"

	"github.com/google/uuid"
)

// Event types published on the booking topic.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingPaid      = "booking.paid"
	TypeBookingAssigned  = "booking.assigned"
	TypeBookingConfirmed = "booking.confirmed"
)

// Header keys attached to every message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// BookingEvent is the payload of booking lifecycle messages.
type BookingEvent struct {
	EventID         string               `json:"eventId"`
	Type            string               `json:"type"`
	BookingID       string               `json:"bookingId"`
	UserID          string               `json:"userId"`
	WorkerID        string               `json:"workerId,omitempty"`
	ServiceName     string               `json:"serviceName"`
	Quantity        int                  `json:"quantity"`
	TotalPriceCents int64                `json:"totalPriceCents"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	SessionID       string               `json:"sessionId"`
	OccurredAt      time.Time            `json:"occurredAt"`
}

// NewBookingEvent snapshots a booking into an event of the given type.
func NewBookingEvent(eventType string, b *models.BookedService) BookingEvent {
	return BookingEvent{
		EventID:         uuid.New().String(),
		Type:            eventType,
		BookingID:       b.ID,
		UserID:          b.UserID,
		WorkerID:        b.AssignedWorkerID,
		ServiceName:     b.Name,
		Quantity:        b.Quantity,
		TotalPriceCents: b.TotalPriceCents,
		PaymentStatus:   b.PaymentStatus,
		SessionID:       b.StripeSessionID,
		OccurredAt:      time.Now().UTC(),
	}
}

func (e BookingEvent) encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Type, err)
	}
	return data, nil
}

// Publisher sends booking events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
	Close() error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
