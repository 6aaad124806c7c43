package memberRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the members collection.
func (r *MongoMemberRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: active members per provider (and location).
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("provider_active_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "locationId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("provider_location_active_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create member indexes: %w", err)
	}
	return nil
}
