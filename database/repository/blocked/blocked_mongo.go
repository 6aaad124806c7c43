package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/database"
	"slotify/models"
)

// MongoBlockedRepo implements BlockedRepository using MongoDB.
type MongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo creates a new instance of BlockedRepository using MongoDB.
func NewMongoBlockedRepo() BlockedRepository {
	return &MongoBlockedRepo{coll: database.Collection("blocked_periods")}
}

func (r *MongoBlockedRepo) ListForMemberRange(ctx context.Context, memberID, fromDate, toDate string) ([]models.BlockedPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Date strings in "2006-01-02" order lexicographically, so span
	// intersection is expressible directly on the string fields. Recurring
	// periods repeat weekly past their anchor span, so any recurring period
	// anchored on or before the range still applies.
	filter := bson.M{
		"memberId": memberID,
		"$or": bson.A{
			bson.M{
				"startDate": bson.M{"$lte": toDate},
				"endDate":   bson.M{"$gte": fromDate},
			},
			bson.M{
				"recurring": true,
				"startDate": bson.M{"$lte": toDate},
			},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve blocked periods for member %s: %w", memberID, err)
	}
	defer cursor.Close(ctx)

	var periods []models.BlockedPeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode blocked periods: %w", err)
	}
	return periods, nil
}

func (r *MongoBlockedRepo) Create(ctx context.Context, period *models.BlockedPeriod) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if period.ID == "" {
		period.ID = uuid.New().String()
	}
	if period.CreatedAt.IsZero() {
		period.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, period); err != nil {
		return fmt.Errorf("failed to insert blocked period: %w", err)
	}
	return nil
}

func (r *MongoBlockedRepo) Delete(ctx context.Context, memberID, periodID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": periodID, "memberId": memberID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete blocked period %s: %w", periodID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoBlockedRepo) DeleteExpired(ctx context.Context, beforeDate string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Recurring periods never expire by date.
	filter := bson.M{"endDate": bson.M{"$lt": beforeDate}, "recurring": false}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired blocked periods: %w", err)
	}
	return res.DeletedCount, nil
}
