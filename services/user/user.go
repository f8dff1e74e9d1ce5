package user

import (
	"context"

	"asst/models"
	"asst/services/access"
	"asst/utils"
)

// GetProfile returns the caller's profile together with their bookings.
func (s *DefaultUserService) GetProfile(ctx context.Context, actor *models.User) (*ProfileView, error) {
	if err := access.RequireUser(actor); err != nil {
		return nil, err
	}
	booked, err := s.Booked.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load bookings", err)
	}
	return &ProfileView{
		User:             actor,
		CompletedProfile: actor.HasCompletedProfile(),
		BookedServices:   booked,
	}, nil
}
