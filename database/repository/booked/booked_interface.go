package bookedRepo

import (
	"context"
	"errors"

	"asst/models"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booked service: not found")

// BookedRepository stores customer bookings.
type BookedRepository interface {
	Create(ctx context.Context, booking *models.BookedService) error
	GetByID(ctx context.Context, id string) (*models.BookedService, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.BookedService, error)
	// MarkPaid moves a pending booking to completed and records the payment
	// intent. It reports false when the booking was already completed.
	MarkPaid(ctx context.Context, sessionID, paymentIntentID string) (bool, error)
	// SetAssignedWorker sets or, with an empty workerID, clears the worker.
	SetAssignedWorker(ctx context.Context, id, workerID string) error
	// MarkConfirmed flags a booking whose authorized payment was captured.
	MarkConfirmed(ctx context.Context, id string) error
	// ListByUser returns the bookings of a customer, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.BookedService, error)
	// ListByWorker returns the bookings assigned to a worker, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]models.BookedService, error)
	// ListAll returns one page of all bookings, newest first, plus the total count.
	ListAll(ctx context.Context, skip, limit int64) ([]models.BookedService, int64, error)
}
