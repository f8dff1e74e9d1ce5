package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	catalogRepo "asst/database/repository/catalog"
	"asst/models"
	"asst/services/events"
	"asst/services/payment"
	"asst/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverviewPath is where customers land after submitting a booking.
const OverviewPath = "/payments/booking-overview"

func (s *DefaultBookingService) loadService(ctx context.Context, slug string) (*models.BookableService, []models.CustomInput, error) {
	svc, err := s.Catalog.GetServiceBySlug(ctx, slug)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, nil, errBadRequest()
	}
	if err != nil {
		return nil, nil, utils.Internal("Failed to load service", err)
	}
	inputs, err := s.Catalog.ListInputs(ctx, svc.ID)
	if err != nil {
		return nil, nil, utils.Internal("Failed to load service inputs", err)
	}
	return svc, inputs, nil
}

// GetServiceForm returns the service behind slug together with its booking form.
func (s *DefaultBookingService) GetServiceForm(ctx context.Context, slug string) (*models.BookableService, *Form, error) {
	svc, inputs, err := s.loadService(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	return svc, BuildForm(svc, inputs), nil
}

// BuildSummary renders the human readable description of a booking: the
// service description, its unit price and every answered field in form order.
func BuildSummary(svc *models.BookableService, answers *Answers) string {
	lines := []string{
		"Description: " + svc.Description,
		"Price per unit: " + svc.Price(),
	}
	for _, a := range answers.Values {
		lines = append(lines, a.Field.Label+" - "+a.Display())
	}
	return strings.Join(lines, "\n")
}

// Book validates the submission, creates the checkout session and stores the
// pending booking. Nothing is stored when validation or the gateway fails.
func (s *DefaultBookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if req.User == nil {
		return nil, utils.Unauthorized("Please register for an account to complete your booking")
	}
	if !req.User.HasCompletedProfile() {
		return nil, ErrProfileIncomplete()
	}

	svc, inputs, err := s.loadService(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	form := BuildForm(svc, inputs)
	answers, fieldErrs := form.Bind(req.Values)
	if !fieldErrs.Empty() {
		return nil, utils.Validation(fieldErrs)
	}
	if availErrs := CheckAvailability(svc, answers.Date, answers.Time, s.now()); !availErrs.Empty() {
		return nil, utils.Validation(availErrs)
	}

	summary := BuildSummary(svc, answers)
	logger := utils.GetLogger().With(
		zap.String("userID", req.User.ID),
		zap.String("service", svc.Slug),
	)

	checkout, err := s.Gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		CustomerEmail:   req.User.Email,
		Currency:        s.currency(),
		Name:            svc.Name,
		Description:     summary,
		ImageURL:        svc.ThumbnailURL,
		UnitAmountCents: svc.PriceCents,
		Quantity:        int64(answers.Quantity),
		SuccessURL:      s.absoluteURL(OverviewPath + "?session_id=" + payment.SessionIDPlaceholder),
		CancelURL:       s.absoluteURL("/services/" + svc.Slug),
	})
	if err != nil {
		logger.Error("Checkout session creation failed", zap.Error(err))
		return nil, utils.Upstream("Could not start the payment. Please try again.", err)
	}

	booking := &models.BookedService{
		ID:              uuid.New().String(),
		UserID:          req.User.ID,
		UserEmail:       req.User.Email,
		Name:            svc.Name,
		Description:     svc.Description,
		Summary:         summary,
		UnitPriceCents:  svc.PriceCents,
		TotalPriceCents: svc.PriceCents * int64(answers.Quantity),
		Quantity:        answers.Quantity,
		PaymentStatus:   models.PaymentPending,
		StripeSessionID: checkout.ID,
	}
	if err := s.Booked.Create(ctx, booking); err != nil {
		logger.Error("Checkout session created but booking was not stored",
			zap.String("sessionID", checkout.ID), zap.Error(err))
		return nil, utils.Internal("Failed to store booking", err)
	}
	logger.Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("sessionID", checkout.ID),
		zap.Int64("totalCents", booking.TotalPriceCents))

	s.publish(ctx, events.TypeBookingCreated, booking)

	return &BookingResult{
		Booking:     booking,
		RedirectURL: OverviewPath + "?session_id=" + url.QueryEscape(checkout.ID),
		CheckoutURL: checkout.URL,
		SessionID:   checkout.ID,
	}, nil
}

// GetOverview is limited to the booking owner and managers.
func (s *DefaultBookingService) GetOverview(ctx context.Context, actor *models.User, sessionID string) (*models.BookedService, error) {
	if sessionID == "" {
		return nil, errBadRequest()
	}
	booking, err := s.findBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actor == nil || (booking.UserID != actor.ID && !actor.Can(models.PermissionManage)) {
		return nil, utils.Forbidden("You do not have access to this booking")
	}
	return booking, nil
}

func (s *DefaultBookingService) publish(ctx context.Context, eventType string, booking *models.BookedService) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewBookingEvent(eventType, booking)); err != nil {
		utils.GetLogger().Warn("Failed to publish booking event",
			zap.String("type", eventType),
			zap.String("bookingID", booking.ID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) currency() string {
	if s.Currency == "" {
		return "usd"
	}
	return s.Currency
}

func (s *DefaultBookingService) absoluteURL(path string) string {
	return fmt.Sprintf("%s%s", strings.TrimRight(s.RootURL, "/"), path)
}
