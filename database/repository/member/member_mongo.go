package memberRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/database"
	"slotify/models"
)

// MongoMemberRepo implements MemberRepository using MongoDB.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a new instance of MemberRepository using MongoDB.
func NewMongoMemberRepo() MemberRepository {
	return &MongoMemberRepo{coll: database.Collection("members")}
}

func (r *MongoMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&member); err != nil {
		return nil, fmt.Errorf("failed to fetch member with id %s: %w", id, err)
	}
	return &member, nil
}

func (r *MongoMemberRepo) GetWeeklySchedule(ctx context.Context, memberID string) (models.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	filter := bson.M{"id": memberID}
	proj := bson.M{"schedule": 1}
	opts := options.FindOne().SetProjection(proj)
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&member); err != nil {
		return models.WeeklySchedule{}, fmt.Errorf("failed to fetch schedule for member %s: %w", memberID, err)
	}
	return member.Schedule, nil
}

func (r *MongoMemberRepo) ListActiveByProvider(ctx context.Context, providerID, locationID string) ([]models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "active": true}
	if locationID != "" {
		filter["locationId"] = locationID
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve members for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}
