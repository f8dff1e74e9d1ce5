package catalog

import (
	"context"
	"io"

	"asst/database/repository"
	"asst/models"
	"asst/services/storage"
)

// PageSize is the number of services on one page of the public list.
const PageSize = 20

// CatalogService manages bookable services and their custom inputs.
type CatalogService interface {
	ListServices(ctx context.Context, page int) (*ServicePage, error)
	GetService(ctx context.Context, slug string) (*models.BookableService, []models.CustomInput, error)

	CreateService(ctx context.Context, actor *models.User, input ServiceInput) (*models.BookableService, error)
	UpdateService(ctx context.Context, actor *models.User, slug string, input ServiceInput) (*models.BookableService, error)
	DeleteService(ctx context.Context, actor *models.User, slug string) error

	ListInputs(ctx context.Context, actor *models.User, slug string) ([]models.CustomInput, error)
	CreateInput(ctx context.Context, actor *models.User, slug string, input InputRequest) (*models.CustomInput, error)
	DeleteInput(ctx context.Context, actor *models.User, slug, inputID string) error
}

// ServicePage is one page of the public service list.
type ServicePage struct {
	Services   []models.BookableService `json:"services"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
	Total      int64                    `json:"total"`
}

// ImageUpload is an optional image sent with a service form.
type ImageUpload struct {
	File     io.Reader
	Filename string
}

// ServiceInput is the admin form for creating or editing a service. Times use
// the "3:04 PM" layout, the price is a decimal string.
type ServiceInput struct {
	Name          string   `json:"name" form:"name" validate:"required,max=255"`
	Description   string   `json:"description" form:"description" validate:"required"`
	Price         string   `json:"price" form:"price" validate:"required"`
	Unit          string   `json:"unit" form:"unit" validate:"required,max=255"`
	HourStart     string   `json:"hour_start" form:"hour_start" validate:"required"`
	HourEnd       string   `json:"hour_end" form:"hour_end" validate:"required"`
	DaysAvailable []string `json:"available_days" form:"available_days" validate:"dive,weekday"`
	// CustomInputs is a JSON array of InputRequest, only read on create.
	CustomInputs string `json:"custom_inputs" form:"custom_inputs"`

	Thumbnail *ImageUpload `json:"-" form:"-"`
}

// InputRequest describes one custom input.
type InputRequest struct {
	Label         string           `json:"label" form:"label" validate:"required,max=255"`
	FieldType     models.FieldType `json:"field_type" form:"field_type" validate:"required,oneof=ft_text ft_text_multiline ft_date ft_time ft_checkbox"`
	FieldRequired bool             `json:"field_required" form:"field_required"`
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo   repository.CatalogRepository
	Images storage.ImageStore
}
