package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings and bookedSeats collections.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Listings are served oldest start date first
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("user_start_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "start_date", Value: 1}},
			Options: options.Index().SetName("start_date_idx"),
		},
		// Sweeper work sets
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("status_end_date_idx"),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	ledgerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary conflict lookup: active reservations per seat
		{
			Keys:    bson.D{{Key: "seat_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("seat_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}
	if _, err := repo.ledgerColl.Indexes().CreateMany(ctx, ledgerIndexes); err != nil {
		return fmt.Errorf("failed to create ledger indexes: %w", err)
	}
	return nil
}
