package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "asst/database/repository/user"
	"asst/models"
	"asst/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates the account and its profile in one insert and signs the
// new user in.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	errs := utils.FieldErrors{}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		errs.Add("password", err.Error())
	}
	if err := utils.Validator().Struct(req); err != nil {
		errs.Merge(utils.ToFieldErrors(err))
	}
	if !errs.Empty() {
		return nil, utils.Validation(errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: Failed to hash password", zap.Error(err))
		return nil, utils.Internal("Registration failed, please try again", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Permissions:  []string{},
		Profile: models.UserProfile{
			Name:        strings.TrimSpace(req.Name),
			PhoneNumber: strings.TrimSpace(req.Phone),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.Validation(utils.FieldErrors{"email": {"A user with this email already exists."}})
		}
		utils.GetLogger().Error("Register: Failed to create user", zap.Error(err))
		return nil, utils.Internal("Registration failed, please try again", err)
	}

	utils.GetLogger().Info("User registered", zap.String("userID", u.ID))
	return s.issueToken(ctx, u)
}
