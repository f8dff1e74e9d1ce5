package notification

import (
	"context"

	"asst/models"
)

// BookingNotifier tells the customer and the operator about a paid booking.
type BookingNotifier interface {
	NotifyBookingPaid(ctx context.Context, booking *models.BookedService) error
}

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is an outgoing plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}
