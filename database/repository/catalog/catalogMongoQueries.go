package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asst/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (r *MongoCatalogRepo) findService(ctx context.Context, filter bson.M) (*models.BookableService, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var svc models.BookableService
	if err := r.services.FindOne(ctx, filter).Decode(&svc); err != nil {
		if isNoDocuments(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &svc, nil
}

// GetServiceByID retrieves a service by its id.
func (r *MongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.BookableService, error) {
	return r.findService(ctx, bson.M{"id": id})
}

// GetServiceBySlug retrieves a service by its slug.
func (r *MongoCatalogRepo) GetServiceBySlug(ctx context.Context, slug string) (*models.BookableService, error) {
	return r.findService(ctx, bson.M{"slug": slug})
}

func (r *MongoCatalogRepo) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.services.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count services: %w", err)
	}
	return n > 0, nil
}

func (r *MongoCatalogRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, bson.M{"slug": slug})
}

func (r *MongoCatalogRepo) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.M{"name": name}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return r.exists(ctx, filter)
}

// ListServices returns a page of services sorted by name.
func (r *MongoCatalogRepo) ListServices(ctx context.Context, skip, limit int64) ([]models.BookableService, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	total, err := r.services.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.BookableService{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, total, nil
}

// ListInputs returns the inputs of a service ordered by position.
func (r *MongoCatalogRepo) ListInputs(ctx context.Context, bookableID string) ([]models.CustomInput, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.inputs.Find(ctx, bson.M{"bookableId": bookableID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inputs: %w", err)
	}
	defer cursor.Close(ctx)

	inputs := []models.CustomInput{}
	if err := cursor.All(ctx, &inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs: %w", err)
	}
	return inputs, nil
}
