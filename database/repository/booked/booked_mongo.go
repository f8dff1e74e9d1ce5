package bookedRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asst/models"
	"asst/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collection = "booked_services"

// MongoBookedRepo implements BookedRepository using MongoDB.
type MongoBookedRepo struct {
	coll *mongo.Collection
}

// NewMongoBookedRepo creates a BookedRepository backed by db.
func NewMongoBookedRepo(db *mongo.Database) BookedRepository {
	repo := &MongoBookedRepo{coll: db.Collection(collection)}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create booked service indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookedRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stripeSessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "assignedWorkerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookedRepo) Create(ctx context.Context, booking *models.BookedService) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booked service: %w", err)
	}
	return nil
}

func (r *MongoBookedRepo) findOne(ctx context.Context, filter bson.M) (*models.BookedService, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.BookedService
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booked service: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookedRepo) GetByID(ctx context.Context, id string) (*models.BookedService, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBookedRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.BookedService, error) {
	return r.findOne(ctx, bson.M{"stripeSessionId": sessionID})
}

// MarkPaid only matches pending bookings, so concurrent deliveries of the same
// event cannot both report a transition.
func (r *MongoBookedRepo) MarkPaid(ctx context.Context, sessionID, paymentIntentID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"stripeSessionId": sessionID,
		"paymentStatus":   models.PaymentPending,
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus":   models.PaymentCompleted,
		"paymentIntentId": paymentIntentID,
		"updatedAt":       time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark session %s as paid: %w", sessionID, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoBookedRepo) setFields(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booked service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookedRepo) SetAssignedWorker(ctx context.Context, id, workerID string) error {
	if workerID == "" {
		return r.setFields(ctx, id, bson.M{
			"$unset": bson.M{"assignedWorkerId": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		})
	}
	return r.setFields(ctx, id, bson.M{"$set": bson.M{
		"assignedWorkerId": workerID,
		"updatedAt":        time.Now(),
	}})
}

func (r *MongoBookedRepo) MarkConfirmed(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{"$set": bson.M{
		"confirmed": true,
		"updatedAt": time.Now(),
	}})
}

func (r *MongoBookedRepo) list(ctx context.Context, filter bson.M, skip, limit int64) ([]models.BookedService, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve booked services: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.BookedService{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booked services: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookedRepo) ListByUser(ctx context.Context, userID string) ([]models.BookedService, error) {
	return r.list(ctx, bson.M{"userId": userID}, 0, 0)
}

func (r *MongoBookedRepo) ListByWorker(ctx context.Context, workerID string) ([]models.BookedService, error) {
	return r.list(ctx, bson.M{"assignedWorkerId": workerID}, 0, 0)
}

func (r *MongoBookedRepo) ListAll(ctx context.Context, skip, limit int64) ([]models.BookedService, int64, error) {
	countCtx, cancel := newContext(ctx, 5*time.Second)
	total, err := r.coll.CountDocuments(countCtx, bson.M{})
	cancel()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count booked services: %w", err)
	}
	bookings, err := r.list(ctx, bson.M{}, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
