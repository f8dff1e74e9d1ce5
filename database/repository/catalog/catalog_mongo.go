package catalogRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asst/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	servicesCollection = "bookables"
	inputsCollection   = "bookable_inputs"

	nameIndex = "uniq_name"
	slugIndex = "uniq_slug"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services *mongo.Collection
	inputs   *mongo.Collection
}

// NewMongoCatalogRepo creates a CatalogRepository backed by db.
func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	repo := &MongoCatalogRepo{
		services: db.Collection(servicesCollection),
		inputs:   db.Collection(inputsCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create catalog indexes", zap.Error(err))
	}
	return repo
}

// newContext derives a bounded context for a single database call.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// duplicateKeyError maps a unique index violation to the matching sentinel.
func duplicateKeyError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	switch {
	case strings.Contains(err.Error(), slugIndex):
		return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
	case strings.Contains(err.Error(), nameIndex):
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	}
	return err
}
