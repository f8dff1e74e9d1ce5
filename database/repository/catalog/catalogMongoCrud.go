package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"asst/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateService inserts a new service document.
func (r *MongoCatalogRepo) CreateService(ctx context.Context, svc *models.BookableService) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", duplicateKeyError(err))
	}
	return nil
}

// UpdateService rewrites everything except id, slug and createdAt.
func (r *MongoCatalogRepo) UpdateService(ctx context.Context, svc *models.BookableService) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	svc.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":          svc.Name,
		"description":   svc.Description,
		"priceCents":    svc.PriceCents,
		"unit":          svc.Unit,
		"thumbnailUrl":  svc.ThumbnailURL,
		"daysAvailable": svc.DaysAvailable,
		"hourStart":     svc.HourStart,
		"hourEnd":       svc.HourEnd,
		"updatedAt":     svc.UpdatedAt,
	}}

	result, err := r.services.UpdateOne(ctx, bson.M{"id": svc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, duplicateKeyError(err))
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes the inputs of a service, then the service itself.
func (r *MongoCatalogRepo) DeleteService(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.inputs.DeleteMany(ctx, bson.M{"bookableId": id}); err != nil {
		return fmt.Errorf("failed to delete inputs of service %s: %w", id, err)
	}
	result, err := r.services.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateInput stores an input after the last existing one of its service.
func (r *MongoCatalogRepo) CreateInput(ctx context.Context, input *models.CustomInput) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	var last models.CustomInput
	err := r.inputs.FindOne(ctx, bson.M{"bookableId": input.BookableID}, opts).Decode(&last)
	switch {
	case err == nil:
		input.Position = last.Position + 1
	case isNoDocuments(err):
		input.Position = 1
	default:
		return fmt.Errorf("failed to read input positions: %w", err)
	}

	now := time.Now()
	input.CreatedAt = now
	input.UpdatedAt = now
	if _, err := r.inputs.InsertOne(ctx, input); err != nil {
		return fmt.Errorf("failed to create input: %w", err)
	}
	return nil
}

// DeleteInput removes an input only if it belongs to bookableID.
func (r *MongoCatalogRepo) DeleteInput(ctx context.Context, bookableID, inputID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.inputs.DeleteOne(ctx, bson.M{"id": inputID, "bookableId": bookableID})
	if err != nil {
		return fmt.Errorf("failed to delete input %s: %w", inputID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
