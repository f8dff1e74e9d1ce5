package booking

import (
	"context"
	"time"

	"asst/database/repository"
	"asst/models"
	"asst/services/events"
	"asst/services/notification"
	"asst/services/payment"
)

// BookingService runs the customer booking flow from form to confirmed payment.
type BookingService interface {
	// GetServiceForm returns a service and the form used to book it.
	GetServiceForm(ctx context.Context, slug string) (*models.BookableService, *Form, error)
	// Book validates a submission, opens a checkout session and records a pending booking.
	Book(ctx context.Context, req BookingRequest) (*BookingResult, error)
	// HandleWebhook processes one payment provider webhook delivery.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// GetOverview returns the booking created for a checkout session.
	GetOverview(ctx context.Context, actor *models.User, sessionID string) (*models.BookedService, error)
}

// BookingRequest is one booking form submission by an authenticated user.
type BookingRequest struct {
	User   *models.User
	Slug   string
	Values map[string]string
}

// BookingResult is returned once the checkout session and pending booking exist.
type BookingResult struct {
	Booking     *models.BookedService `json:"booking"`
	RedirectURL string                `json:"redirectUrl"`
	CheckoutURL string                `json:"checkoutUrl"`
	SessionID   string                `json:"sessionId"`
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Catalog  repository.CatalogRepository
	Booked   repository.BookedRepository
	Gateway  payment.Gateway
	Notifier notification.BookingNotifier
	Events   events.Publisher
	Ledger   EventLedger
	// RootURL is the public base URL used for checkout return links.
	RootURL  string
	Currency string
	Now      func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
