package staff

import (
	"context"

	"asst/database/repository"
	"asst/models"
	"asst/services/events"
	"asst/services/payment"
)

// BookedPageSize is the number of bookings on one page of the admin list.
const BookedPageSize = 50

// StaffService covers the back-office: workers, assignments and payment capture.
type StaffService interface {
	ListWorkers(ctx context.Context, actor *models.User) ([]models.User, error)
	PromoteWorker(ctx context.Context, actor *models.User, userID string) (*models.User, error)
	DemoteWorker(ctx context.Context, actor *models.User, userID string) (*models.User, error)

	ListBooked(ctx context.Context, actor *models.User, page int) (*BookedPage, error)
	AssignWorker(ctx context.Context, actor *models.User, bookingID, workerID string) (*models.BookedService, error)
	CapturePayment(ctx context.Context, actor *models.User, bookingID string) (*models.BookedService, error)

	WorkerDashboard(ctx context.Context, worker *models.User) ([]models.BookedService, error)
}

type BookedPage struct {
	Bookings   []models.BookedService `json:"bookings"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"totalPages"`
	Total      int64                  `json:"total"`
}

// AssignRequest sets the worker of a booking; an empty WorkerID clears it.
type AssignRequest struct {
	WorkerID string `json:"workerId"`
}

// WorkerRequest selects the user to promote or demote.
type WorkerRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type DefaultStaffService struct {
	Users   repository.UserRepository
	Booked  repository.BookedRepository
	Gateway payment.Gateway
	Events  events.Publisher
}
