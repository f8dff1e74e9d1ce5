package userRepo

import (
	"context"
	"errors"

	"asst/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user: not found")
	// ErrDuplicateEmail is returned when registering an email twice.
	ErrDuplicateEmail = errors.New("user: email already registered")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record, profile included.
	Create(ctx context.Context, user *models.User) error
	// UpdateProfile replaces the embedded profile of a user.
	UpdateProfile(ctx context.Context, id string, profile models.UserProfile) error
	// SetWorker sets or clears the worker flag of a user.
	SetWorker(ctx context.Context, id string, isWorker bool) error
	// SetTokenHash stores the hash of the latest issued access token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// ListWorkers retrieves every user flagged as a worker, ordered by name.
	ListWorkers(ctx context.Context) ([]models.User, error)
}
