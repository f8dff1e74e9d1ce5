package user

import (
	"context"
	"errors"
	"strings"

	userRepo "asst/database/repository/user"
	"asst/models"
	"asst/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.Unauthorized("Invalid email or password")
	}
	if err != nil {
		utils.GetLogger().Error("Login: Failed to fetch user", zap.Error(err))
		return nil, utils.Internal("Authentication failed, please try again", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("Invalid email or password")
	}
	return s.issueToken(ctx, u)
}

// Authenticate resolves a bearer token to its user. Only the most recently
// issued token of a user is accepted.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, utils.Unauthorized("Invalid or expired token")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.Unauthorized("Invalid or expired token")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load user", err)
	}
	if u.TokenHash != utils.HashToken(token) {
		return nil, utils.Unauthorized("Session has been replaced, please sign in again")
	}
	return u, nil
}
