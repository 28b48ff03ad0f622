package profileRepo

import (
	"context"
	"fmt"
	"time"

	"deskhive/database"
	"deskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines data access to the profiles collection.
type ProfileRepository interface {
	// Upsert writes the profile keyed by user id, creating it on first sight.
	Upsert(ctx context.Context, profile *models.Profile) error
	// GetByUserID retrieves a profile, nil when not found.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// List returns profiles, optionally filtered by a name/email substring.
	List(ctx context.Context, search string, limit, offset int64) ([]models.Profile, error)
	// EnsureIndexes creates the indexes the collection depends on.
	EnsureIndexes() error
}

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs a new instance of MongoProfileRepo.
func NewMongoProfileRepo() ProfileRepository {
	return &MongoProfileRepo{coll: database.DB().Collection("profiles")}
}

// Upsert writes the profile keyed by user id, creating it on first sight.
func (repo *MongoProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"user_id": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"email":      profile.Email,
			"name":       profile.Name,
			"role":       profile.Role,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting profile %s: %w", profile.UserID, err)
	}
	return nil
}

// GetByUserID retrieves a profile, nil when not found.
func (repo *MongoProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"user_id": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching profile %s: %w", userID, err)
	}
	return &profile, nil
}

// List returns profiles, optionally filtered by a name/email substring.
func (repo *MongoProfileRepo) List(ctx context.Context, search string, limit, offset int64) ([]models.Profile, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if search != "" {
		filter = bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	profiles := []models.Profile{}
	if err := cursor.All(ctxWithTimeout, &profiles); err != nil {
		return nil, fmt.Errorf("error decoding profiles: %w", err)
	}
	return profiles, nil
}

// EnsureIndexes creates the necessary indexes on the profiles collection.
func (repo *MongoProfileRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id"),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
