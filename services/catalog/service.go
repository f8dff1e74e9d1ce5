package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	catalogRepo "asst/database/repository/catalog"
	"asst/models"
	"asst/services/access"
	"asst/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgDuplicateName = "A service with the same name already exists. Please choose another name."
	msgMinimumPrice  = "The price must be greater than $1"
	// minimumPriceCents applies to newly created services only.
	minimumPriceCents = 100
)

// ListServices returns one page of services, pages starting at 1.
func (s *DefaultCatalogService) ListServices(ctx context.Context, page int) (*ServicePage, error) {
	if page < 1 {
		page = 1
	}
	services, total, err := s.Repo.ListServices(ctx, int64((page-1)*PageSize), PageSize)
	if err != nil {
		return nil, utils.Internal("Failed to list services", err)
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return nil, utils.NotFound("Page")
	}
	return &ServicePage{Services: services, Page: page, TotalPages: totalPages, Total: total}, nil
}

// GetService returns a service and its inputs.
func (s *DefaultCatalogService) GetService(ctx context.Context, slug string) (*models.BookableService, []models.CustomInput, error) {
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	inputs, err := s.Repo.ListInputs(ctx, svc.ID)
	if err != nil {
		return nil, nil, utils.Internal("Failed to load service inputs", err)
	}
	return svc, inputs, nil
}

func (s *DefaultCatalogService) serviceBySlug(ctx context.Context, slug string) (*models.BookableService, error) {
	svc, err := s.Repo.GetServiceBySlug(ctx, slug)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, utils.NotFound("Service")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load service", err)
	}
	return svc, nil
}

// parsedService holds the typed values of a valid ServiceInput.
type parsedService struct {
	priceCents int64
	hourStart  models.TimeOfDay
	hourEnd    models.TimeOfDay
	days       []string
	inputs     []InputRequest
}

// parseServiceInput validates every field and reports all problems at once.
func parseServiceInput(input ServiceInput, requireDays bool) (*parsedService, utils.FieldErrors) {
	errs := utils.FieldErrors{}
	if err := utils.Validator().Struct(input); err != nil {
		errs.Merge(utils.ToFieldErrors(err))
	}

	out := &parsedService{days: normalizeDays(input.DaysAvailable)}
	if input.Price != "" {
		cents, err := models.ParsePrice(input.Price)
		if err != nil {
			errs.Add("price", capitalize(err.Error())+".")
		}
		out.priceCents = cents
	}
	var err error
	if input.HourStart != "" {
		if out.hourStart, err = models.ParseTimeOfDay(input.HourStart); err != nil {
			errs.Add("hour_start", "Enter a valid time.")
		}
	}
	if input.HourEnd != "" {
		if out.hourEnd, err = models.ParseTimeOfDay(input.HourEnd); err != nil {
			errs.Add("hour_end", "Enter a valid time.")
		}
	}
	if requireDays && len(out.days) == 0 {
		errs.Add("available_days", "This field is required.")
	}
	if input.CustomInputs != "" {
		if err := json.Unmarshal([]byte(input.CustomInputs), &out.inputs); err != nil {
			errs.Add("custom_inputs", "Enter a valid JSON list of inputs.")
		}
		for i, in := range out.inputs {
			if err := utils.Validator().Struct(in); err != nil {
				errs.Add("custom_inputs", fmt.Sprintf("Input %d is invalid: %s", i+1, utils.ToFieldErrors(err).Error()))
			}
		}
	}
	return out, errs
}

// normalizeDays keeps valid codes once each, in calendar order. Codes are
// matched case-insensitively, as the weekday validator accepts them.
func normalizeDays(days []string) []string {
	seen := map[string]bool{}
	for _, d := range days {
		seen[strings.ToLower(strings.TrimSpace(d))] = true
	}
	out := []string{}
	for _, d := range utils.DayCodes {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *DefaultCatalogService) uploadThumbnail(ctx context.Context, upload *ImageUpload) (string, error) {
	if upload == nil || upload.File == nil {
		return "", nil
	}
	if s.Images == nil {
		return "", utils.Precondition("Image uploads are not configured")
	}
	url, err := s.Images.UploadThumbnail(ctx, upload.File, upload.Filename)
	if err != nil {
		return "", utils.Upstream("Failed to upload thumbnail", err)
	}
	return url, nil
}

// CreateService validates the form, assigns a unique slug and stores the
// service followed by its inline custom inputs.
func (s *DefaultCatalogService) CreateService(ctx context.Context, actor *models.User, input ServiceInput) (*models.BookableService, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}

	parsed, errs := parseServiceInput(input, true)
	if !errs.Empty() {
		return nil, utils.Validation(errs)
	}
	taken, err := s.Repo.NameExists(ctx, input.Name, "")
	if err != nil {
		return nil, utils.Internal("Failed to check service name", err)
	}
	if taken {
		errs.Add("name", msgDuplicateName)
		return nil, utils.Validation(errs)
	}
	if parsed.priceCents < minimumPriceCents {
		errs.Add("price", msgMinimumPrice)
		return nil, utils.Validation(errs)
	}

	thumbnail, err := s.uploadThumbnail(ctx, input.Thumbnail)
	if err != nil {
		return nil, err
	}

	svc := &models.BookableService{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Description:   input.Description,
		PriceCents:    parsed.priceCents,
		Unit:          input.Unit,
		ThumbnailURL:  thumbnail,
		DaysAvailable: parsed.days,
		HourStart:     parsed.hourStart,
		HourEnd:       parsed.hourEnd,
	}
	if err := s.insertWithSlug(ctx, svc); err != nil {
		return nil, err
	}

	for _, in := range parsed.inputs {
		if _, err := s.addInput(ctx, svc.ID, in); err != nil {
			s.rollbackService(ctx, svc)
			return nil, err
		}
	}
	utils.GetLogger().Info("Service created",
		zap.String("slug", svc.Slug), zap.String("by", actor.ID), zap.Int("inputs", len(parsed.inputs)))
	return svc, nil
}

// rollbackService removes a service whose inline inputs could not all be
// stored, so the same form can be submitted again.
func (s *DefaultCatalogService) rollbackService(ctx context.Context, svc *models.BookableService) {
	if err := s.Repo.DeleteService(ctx, svc.ID); err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
		utils.GetLogger().Error("Failed to roll back partially created service",
			zap.String("slug", svc.Slug), zap.Error(err))
	}
}

// insertWithSlug picks the first free slug and retries with the next counter
// when a concurrent insert claims it first.
func (s *DefaultCatalogService) insertWithSlug(ctx context.Context, svc *models.BookableService) error {
	base := Slugify(svc.Name)
	if base == "" {
		base = "service"
	}
	attempt := 1
	for {
		slug, at, err := nextFreeSlug(ctx, base, attempt, s.Repo.SlugExists)
		if err != nil {
			return utils.Internal("Failed to assign slug", err)
		}
		svc.Slug = slug
		err = s.Repo.CreateService(ctx, svc)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, catalogRepo.ErrDuplicateSlug):
			attempt = at + 1
		case errors.Is(err, catalogRepo.ErrDuplicateName):
			return utils.Validation(utils.FieldErrors{"name": {msgDuplicateName}})
		default:
			return utils.Internal("Failed to create service", err)
		}
	}
}

// UpdateService edits a service. The slug never changes; the available days
// are replaced by the submitted set.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, actor *models.User, slug string, input ServiceInput) (*models.BookableService, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	parsed, errs := parseServiceInput(input, false)
	if !errs.Empty() {
		return nil, utils.Validation(errs)
	}
	taken, err := s.Repo.NameExists(ctx, input.Name, svc.ID)
	if err != nil {
		return nil, utils.Internal("Failed to check service name", err)
	}
	if taken {
		return nil, utils.Validation(utils.FieldErrors{"name": {msgDuplicateName}})
	}

	thumbnail, err := s.uploadThumbnail(ctx, input.Thumbnail)
	if err != nil {
		return nil, err
	}
	if thumbnail != "" {
		svc.ThumbnailURL = thumbnail
	}
	svc.Name = input.Name
	svc.Description = input.Description
	svc.PriceCents = parsed.priceCents
	svc.Unit = input.Unit
	svc.DaysAvailable = parsed.days
	svc.HourStart = parsed.hourStart
	svc.HourEnd = parsed.hourEnd

	if err := s.Repo.UpdateService(ctx, svc); err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateName) {
			return nil, utils.Validation(utils.FieldErrors{"name": {msgDuplicateName}})
		}
		return nil, utils.Internal("Failed to update service", err)
	}
	return svc, nil
}

// DeleteService removes a service and its inputs. Existing bookings keep their snapshot.
func (s *DefaultCatalogService) DeleteService(ctx context.Context, actor *models.User, slug string) error {
	if err := access.RequireManage(actor); err != nil {
		return err
	}
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteService(ctx, svc.ID); err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.Internal("Failed to delete service", err)
	}
	utils.GetLogger().Info("Service deleted", zap.String("slug", slug), zap.String("by", actor.ID))
	return nil
}

func (s *DefaultCatalogService) ListInputs(ctx context.Context, actor *models.User, slug string) ([]models.CustomInput, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	_, inputs, err := s.GetService(ctx, slug)
	return inputs, err
}

func (s *DefaultCatalogService) CreateInput(ctx context.Context, actor *models.User, slug string, input InputRequest) (*models.CustomInput, error) {
	if err := access.RequireManage(actor); err != nil {
		return nil, err
	}
	if err := utils.Validator().Struct(input); err != nil {
		return nil, utils.Validation(utils.ToFieldErrors(err))
	}
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.addInput(ctx, svc.ID, input)
}

func (s *DefaultCatalogService) addInput(ctx context.Context, bookableID string, in InputRequest) (*models.CustomInput, error) {
	input := &models.CustomInput{
		ID:            uuid.New().String(),
		BookableID:    bookableID,
		Label:         in.Label,
		FieldType:     in.FieldType,
		FieldRequired: in.FieldRequired,
	}
	if err := s.Repo.CreateInput(ctx, input); err != nil {
		return nil, utils.Internal("Failed to create input", err)
	}
	return input, nil
}

func (s *DefaultCatalogService) DeleteInput(ctx context.Context, actor *models.User, slug, inputID string) error {
	if err := access.RequireManage(actor); err != nil {
		return err
	}
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return err
	}
	err = s.Repo.DeleteInput(ctx, svc.ID, inputID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.NotFound("Input")
	}
	if err != nil {
		return utils.Internal("Failed to delete input", err)
	}
	return nil
}
