package payment

import "context"

// EventCheckoutCompleted is the Stripe event sent once a customer finishes checkout.
const EventCheckoutCompleted = "checkout.session.completed"

// SessionIDPlaceholder is replaced by Stripe with the session id when it
// redirects to a success URL.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// CheckoutRequest describes a single-line-item hosted checkout.
type CheckoutRequest struct {
	CustomerEmail   string
	Currency        string
	Name            string
	Description     string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int64
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the part of a created session the booking flow keeps.
type CheckoutSession struct {
	ID  string
	URL string
}

// Event is a verified webhook event. Session fields are only filled for
// checkout session events.
type Event struct {
	ID              string
	Type            string
	SessionID       string
	PaymentIntentID string
}

// Gateway is the payment provider used by the booking flow.
type Gateway interface {
	// CreateCheckoutSession opens a hosted checkout whose payment is only
	// authorized; funds are taken later by CapturePayment.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	CapturePayment(ctx context.Context, paymentIntentID string) error
	// VerifyEvent checks the signature header and decodes the event.
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
