package booking

import (
	"context"
	"errors"

	bookedRepo "asst/database/repository/booked"
	"asst/models"
	"asst/services/events"
	"asst/services/payment"
	"asst/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) findBySession(ctx context.Context, sessionID string) (*models.BookedService, error) {
	booking, err := s.Booked.GetBySessionID(ctx, sessionID)
	if errors.Is(err, bookedRepo.ErrNotFound) {
		return nil, errBadRequest()
	}
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	return booking, nil
}

// HandleWebhook verifies a payment webhook and finalizes the booking of a
// completed checkout. Only the delivery that moves the booking from pending
// to completed queues the emails, so repeated deliveries are harmless.
// Event types other than checkout completion are acknowledged and ignored.
func (s *DefaultBookingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		return utils.Integration("Missing Stripe-Signature header", nil)
	}
	evt, err := s.Gateway.VerifyEvent(payload, signature)
	if err != nil {
		return utils.Integration("Invalid webhook payload or signature", err)
	}

	logger := utils.GetLogger().With(zap.String("eventID", evt.ID), zap.String("type", evt.Type))
	if evt.Type != payment.EventCheckoutCompleted {
		logger.Debug("Ignoring webhook event")
		return nil
	}

	booking, err := s.findBySession(ctx, evt.SessionID)
	if err != nil {
		logger.Warn("Webhook for unknown checkout session", zap.String("sessionID", evt.SessionID))
		return err
	}

	first, err := s.Ledger.MarkProcessed(ctx, evt.ID)
	if err != nil {
		return utils.Internal("Failed to record webhook event", err)
	}
	if !first {
		logger.Info("Duplicate webhook event skipped")
		return nil
	}

	transitioned, err := s.Booked.MarkPaid(ctx, evt.SessionID, evt.PaymentIntentID)
	if err != nil {
		if ferr := s.Ledger.Forget(ctx, evt.ID); ferr != nil {
			logger.Error("Failed to release webhook event", zap.Error(ferr))
		}
		return utils.Internal("Failed to complete booking payment", err)
	}
	if !transitioned {
		logger.Info("Booking already completed", zap.String("bookingID", booking.ID))
		return nil
	}

	booking.PaymentStatus = models.PaymentCompleted
	booking.PaymentIntentID = evt.PaymentIntentID
	logger.Info("Booking payment completed", zap.String("bookingID", booking.ID))

	if err := s.Notifier.NotifyBookingPaid(ctx, booking); err != nil {
		logger.Error("Failed to queue booking emails", zap.String("bookingID", booking.ID), zap.Error(err))
	}
	s.publish(ctx, events.TypeBookingPaid, booking)
	return nil
}
