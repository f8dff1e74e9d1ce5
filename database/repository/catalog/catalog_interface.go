package catalogRepo

import (
	"context"
	"errors"

	"asst/models"
)

var (
	// ErrNotFound is returned when no service or input matches the lookup.
	ErrNotFound = errors.New("catalog: not found")
	// ErrDuplicateName is returned when another service already uses the name.
	ErrDuplicateName = errors.New("catalog: duplicate service name")
	// ErrDuplicateSlug is returned when an insert loses the race for a slug.
	ErrDuplicateSlug = errors.New("catalog: duplicate service slug")
)

// CatalogRepository stores bookable services and their custom inputs.
type CatalogRepository interface {
	// CreateService inserts a service. Unique index violations map to
	// ErrDuplicateName or ErrDuplicateSlug.
	CreateService(ctx context.Context, svc *models.BookableService) error
	// UpdateService replaces the mutable fields of a service. The slug is never rewritten.
	UpdateService(ctx context.Context, svc *models.BookableService) error
	// DeleteService removes a service together with its inputs.
	DeleteService(ctx context.Context, id string) error
	GetServiceByID(ctx context.Context, id string) (*models.BookableService, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.BookableService, error)
	// SlugExists reports whether a service already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)
	// NameExists reports whether a service other than excludeID uses name.
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	// ListServices returns one page of services ordered by name plus the total count.
	ListServices(ctx context.Context, skip, limit int64) ([]models.BookableService, int64, error)

	// ListInputs returns the inputs of a service in creation order.
	ListInputs(ctx context.Context, bookableID string) ([]models.CustomInput, error)
	// CreateInput appends an input to a service, assigning its position.
	CreateInput(ctx context.Context, input *models.CustomInput) error
	// DeleteInput removes one input of a service.
	DeleteInput(ctx context.Context, bookableID, inputID string) error
}
