package staff

import (
	"context"
	"errors"

	bookedRepo "asst/database/repository/booked"
	"asst/models"
	"asst/services/access"
	"asst/services/events"
	"asst/utils"

	"go.uber.org/zap"
)

func (s *DefaultStaffService) ListBooked(ctx context.Context, actor *models.User, page int) (*BookedPage, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	booked, total, err := s.Booked.ListAll(ctx, int64((page-1)*BookedPageSize), BookedPageSize)
	if err != nil {
		return nil, utils.Internal("Failed to list booked services", err)
	}
	totalPages := int((total + BookedPageSize - 1) / BookedPageSize)
	if totalPages == 0 {
		totalPages = 1
	}
	return &BookedPage{Bookings: booked, Page: page, TotalPages: totalPages, Total: total}, nil
}

func (s *DefaultStaffService) loadBooking(ctx context.Context, id string) (*models.BookedService, error) {
	b, err := s.Booked.GetByID(ctx, id)
	if errors.Is(err, bookedRepo.ErrNotFound) {
		return nil, utils.NotFound("Booked service")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load booked service", err)
	}
	return b, nil
}

// AssignWorker sets the worker of a paid booking, or clears it when workerID
// is empty.
func (s *DefaultStaffService) AssignWorker(ctx context.Context, actor *models.User, bookingID, workerID string) (*models.BookedService, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if workerID != "" {
		if !b.IsPaid() {
			return nil, utils.Precondition("Only paid bookings can be assigned to a worker")
		}
		w, err := s.loadUser(ctx, workerID, "assigned_worker")
		if err != nil {
			return nil, err
		}
		if !w.IsWorker() {
			return nil, utils.Validation(utils.FieldErrors{"assigned_worker": {msgInvalidChoice}})
		}
	}

	if err := s.Booked.SetAssignedWorker(ctx, b.ID, workerID); err != nil {
		return nil, utils.Internal("Failed to assign worker", err)
	}
	b.AssignedWorkerID = workerID
	utils.GetLogger().Info("Assigned worker",
		zap.String("bookingID", b.ID), zap.String("workerID", workerID), zap.String("by", actor.ID))
	s.publish(ctx, events.TypeBookingAssigned, b)
	return b, nil
}

// CapturePayment takes the funds of a paid booking whose payment was only
// authorized at checkout and marks it confirmed.
func (s *DefaultStaffService) CapturePayment(ctx context.Context, actor *models.User, bookingID string) (*models.BookedService, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Confirmed {
		return b, nil
	}
	if !b.IsPaid() || b.PaymentIntentID == "" {
		return nil, utils.Precondition("The customer has not completed the payment yet")
	}

	if err := s.Gateway.CapturePayment(ctx, b.PaymentIntentID); err != nil {
		return nil, utils.Upstream("Failed to capture the payment", err)
	}
	if err := s.Booked.MarkConfirmed(ctx, b.ID); err != nil {
		return nil, utils.Internal("Payment captured but the booking could not be updated", err)
	}
	b.Confirmed = true
	utils.GetLogger().Info("Payment captured", zap.String("bookingID", b.ID), zap.String("by", actor.ID))
	s.publish(ctx, events.TypeBookingConfirmed, b)
	return b, nil
}

func (s *DefaultStaffService) publish(ctx context.Context, eventType string, b *models.BookedService) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewBookingEvent(eventType, b)); err != nil {
		utils.GetLogger().Warn("Failed to publish booking event",
			zap.String("type", eventType), zap.String("bookingID", b.ID), zap.Error(err))
	}
}
