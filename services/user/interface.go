package user

import (
	"context"
	"io"

	"asst/database/repository"
	"asst/models"
	"asst/services/storage"
)

type UserService interface {
	// Registration
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Authentication
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// Profile
	GetProfile(ctx context.Context, actor *models.User) (*ProfileView, error)
	UpdateProfile(ctx context.Context, actor *models.User, req ProfileUpdate) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   repository.UserRepository
	Booked repository.BookedRepository
	Images storage.ImageStore
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phoneNumber" validate:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate replaces the editable profile fields. Avatar is optional.
type ProfileUpdate struct {
	Name        string    `json:"name" form:"name" validate:"max=255"`
	PhoneNumber string    `json:"phoneNumber" form:"phoneNumber" validate:"phone"`
	Avatar      io.Reader `json:"-" form:"-"`
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID          string   `json:"id"`
	Token       string   `json:"token"`
	Email       string   `json:"email,omitempty"`
	Name        string   `json:"name,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// ProfileView is the profile page: the user plus their own bookings.
type ProfileView struct {
	User             *models.User           `json:"user"`
	CompletedProfile bool                   `json:"completedProfile"`
	BookedServices   []models.BookedService `json:"bookedServices"`
}
