package seatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskhive/database"
	"deskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateSeatNumber is returned when creating a seat whose number is taken.
var ErrDuplicateSeatNumber = errors.New("seat number already exists")

// MongoSeatRepo implements SeatRepository using MongoDB.
type MongoSeatRepo struct {
	coll *mongo.Collection
}

// NewMongoSeatRepo constructs a new instance of MongoSeatRepo.
func NewMongoSeatRepo() SeatRepository {
	return &MongoSeatRepo{coll: database.DB().Collection("seats")}
}

// Create inserts a new seat document.
func (repo *MongoSeatRepo) Create(ctx context.Context, seat *models.Seat) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, seat)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSeatNumber
	}
	if err != nil {
		return fmt.Errorf("error creating seat: %w", err)
	}
	return nil
}

// GetByID retrieves a seat by its ID, nil when not found.
func (repo *MongoSeatRepo) GetByID(ctx context.Context, seatID string) (*models.Seat, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seat models.Seat
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": seatID}).Decode(&seat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching seat %s: %w", seatID, err)
	}
	return &seat, nil
}

// GetByIDs retrieves the seats with the given IDs.
func (repo *MongoSeatRepo) GetByIDs(ctx context.Context, seatIDs []string) ([]models.Seat, error) {
	if len(seatIDs) == 0 {
		return []models.Seat{}, nil
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"id": bson.M{"$in": seatIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching seats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	seats := []models.Seat{}
	if err := cursor.All(ctxWithTimeout, &seats); err != nil {
		return nil, fmt.Errorf("error decoding seats: %w", err)
	}
	return seats, nil
}

// List returns all seats ordered by seat number.
func (repo *MongoSeatRepo) List(ctx context.Context) ([]models.Seat, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seat_number", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing seats: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	seats := []models.Seat{}
	if err := cursor.All(ctxWithTimeout, &seats); err != nil {
		return nil, fmt.Errorf("error decoding seats: %w", err)
	}
	return seats, nil
}

// Delete removes a seat by its ID.
func (repo *MongoSeatRepo) Delete(ctx context.Context, seatID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": seatID})
	if err != nil {
		return fmt.Errorf("error deleting seat %s: %w", seatID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("seat %s not found", seatID)
	}
	return nil
}
