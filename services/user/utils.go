package user

import (
	"context"
	"fmt"
	"regexp"

	"asst/models"
	"asst/utils"

	"go.uber.org/zap"
)

var (
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	numberPattern = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[\W_]`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	switch {
	case len(pw) < 8:
		return fmt.Errorf("password must be at least 8 characters long")
	case !upperPattern.MatchString(pw):
		return fmt.Errorf("password must include at least one uppercase letter")
	case !lowerPattern.MatchString(pw):
		return fmt.Errorf("password must include at least one lowercase letter")
	case !numberPattern.MatchString(pw):
		return fmt.Errorf("password must include at least one number")
	case !symbolPattern.MatchString(pw):
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// issueToken signs a new access token and stores its hash, which
// invalidates any token issued before.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, utils.AccessTokenTTL)
	if err != nil {
		utils.GetLogger().Error("issueToken: failed to sign token", zap.String("userID", u.ID), zap.Error(err))
		return nil, utils.Internal("Authentication failed, please try again", err)
	}
	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, u.ID, hash); err != nil {
		return nil, utils.Internal("Authentication failed, please try again", err)
	}
	u.TokenHash = hash
	return &AuthResponse{
		ID:          u.ID,
		Token:       token,
		Email:       u.Email,
		Name:        u.Profile.Name,
		PhoneNumber: u.Profile.PhoneNumber,
		AvatarURL:   u.Profile.AvatarURL,
		Permissions: u.Permissions,
	}, nil
}
