package staff

import (
	"context"
	"errors"

	userRepo "asst/database/repository/user"
	"asst/models"
	"asst/services/access"
	"asst/utils"

	"go.uber.org/zap"
)

const (
	msgIncompleteProfile = "The selected user did not complete his Profile. You cannot make him a worker."
	msgInvalidChoice     = "Select a valid choice. That choice is not one of the available choices."
)

func (s *DefaultStaffService) ListWorkers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	workers, err := s.Users.ListWorkers(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to list workers", err)
	}
	return workers, nil
}

// loadUser resolves a user chosen in an admin form. Unknown ids are a field
// error on field, like any other invalid choice.
func (s *DefaultStaffService) loadUser(ctx context.Context, id, field string) (*models.User, error) {
	if id == "" {
		return nil, utils.Validation(utils.FieldErrors{field: {"This field is required."}})
	}
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.Validation(utils.FieldErrors{field: {msgInvalidChoice}})
	}
	if err != nil {
		return nil, utils.Internal("Failed to load user", err)
	}
	return u, nil
}

// PromoteWorker flags a non-worker with a completed profile as worker.
func (s *DefaultStaffService) PromoteWorker(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, userID, "user")
	if err != nil {
		return nil, err
	}
	if u.IsWorker() {
		return nil, utils.Validation(utils.FieldErrors{"user": {msgInvalidChoice}})
	}
	if !u.HasCompletedProfile() {
		return nil, utils.Validation(utils.FieldErrors{"user": {msgIncompleteProfile}})
	}
	if err := s.Users.SetWorker(ctx, u.ID, true); err != nil {
		return nil, utils.Internal("Failed to update worker", err)
	}
	u.Profile.IsWorker = true
	utils.GetLogger().Info("Worker added", zap.String("userID", u.ID), zap.String("by", actor.ID))
	return u, nil
}

// DemoteWorker clears the worker flag. Bookings already assigned keep their worker.
func (s *DefaultStaffService) DemoteWorker(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, userID, "worker")
	if err != nil {
		return nil, err
	}
	if !u.IsWorker() {
		return nil, utils.Validation(utils.FieldErrors{"worker": {msgInvalidChoice}})
	}
	if err := s.Users.SetWorker(ctx, u.ID, false); err != nil {
		return nil, utils.Internal("Failed to update worker", err)
	}
	u.Profile.IsWorker = false
	utils.GetLogger().Info("Worker removed", zap.String("userID", u.ID), zap.String("by", actor.ID))
	return u, nil
}

// WorkerDashboard lists the bookings assigned to worker.
func (s *DefaultStaffService) WorkerDashboard(ctx context.Context, worker *models.User) ([]models.BookedService, error) {
	if err := access.RequireWorker(worker); err != nil {
		return nil, err
	}
	booked, err := s.Booked.ListByWorker(ctx, worker.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load assigned bookings", err)
	}
	return booked, nil
}
