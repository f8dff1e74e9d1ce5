package user

import (
	"context"
	"strings"

	"asst/models"
	"asst/services/access"
	"asst/utils"

	"go.uber.org/zap"
)

// UpdateProfile replaces name and phone number and, when given, uploads a
// new avatar.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, actor *models.User, req ProfileUpdate) (*models.User, error) {
	if err := access.RequireUser(actor); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if err := utils.Validator().Struct(req); err != nil {
		return nil, utils.Validation(utils.ToFieldErrors(err))
	}

	profile := actor.Profile
	profile.Name = req.Name
	profile.PhoneNumber = req.PhoneNumber
	if req.Avatar != nil {
		if s.Images == nil {
			return nil, utils.Precondition("Image uploads are not configured")
		}
		url, err := s.Images.UploadAvatar(ctx, req.Avatar, actor.ID)
		if err != nil {
			return nil, utils.Upstream("Failed to upload avatar", err)
		}
		profile.AvatarURL = url
	}

	if err := s.Repo.UpdateProfile(ctx, actor.ID, profile); err != nil {
		utils.GetLogger().Error("UpdateProfile: Failed to update profile", zap.String("userID", actor.ID), zap.Error(err))
		return nil, utils.Internal("Failed to update profile", err)
	}

	updated := *actor
	updated.Profile = profile
	return &updated, nil
}
