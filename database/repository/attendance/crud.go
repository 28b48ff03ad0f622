package attendanceRepo

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

// ErrAlreadyCheckedIn is returned when a booking re-checks in on the same date.
var ErrAlreadyCheckedIn = errors.New("booking already checked in for this date")

// MongoAttendanceRepo implements AttendanceRepository using MongoDB.
type MongoAttendanceRepo struct {
	coll *mongo.Collection
}

// NewMongoAttendanceRepo constructs a new instance of MongoAttendanceRepo.
func NewMongoAttendanceRepo() AttendanceRepository {
	return &MongoAttendanceRepo{coll: database.DB().Collection("attendance")}
}

// Create inserts a check-in record. The unique (booking_id, date) index makes
// duplicate same-day check-ins fail here even under concurrent scans.
func (repo *MongoAttendanceRepo) Create(ctx context.Context, record *models.Attendance) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyCheckedIn
	}
	if err != nil {
		return fmt.Errorf("error creating attendance record: %w", err)
	}
	return nil
}

// ExistsForDay reports whether the booking already checked in on a date.
func (repo *MongoAttendanceRepo) ExistsForDay(ctx context.Context, bookingID, date string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctxWithTimeout, bson.M{"booking_id": bookingID, "date": date})
	if err != nil {
		return false, fmt.Errorf("error checking attendance for booking %s: %w", bookingID, err)
	}
	return count > 0, nil
}

// CountPerDay aggregates check-ins per calendar date over [from, to].
func (repo *MongoAttendanceRepo) CountPerDay(ctx context.Context, from, to string) ([]models.DailyAttendance, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": from, "$lte": to}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$date", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating attendance: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	results := []models.DailyAttendance{}
	if err := cursor.All(ctxWithTimeout, &results); err != nil {
		return nil, fmt.Errorf("error decoding attendance aggregates: %w", err)
	}
	return results, nil
}

// ListByUser returns a user's check-in history, newest first.
func (repo *MongoAttendanceRepo) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "checked_in_at", Value: -1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching attendance for user %s: %w", userID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	records := []models.Attendance{}
	if err := cursor.All(ctxWithTimeout, &records); err != nil {
		return nil, fmt.Errorf("error decoding attendance for user %s: %w", userID, err)
	}
	return records, nil
}

// EnsureIndexes creates the necessary indexes on the attendance collection.
func (repo *MongoAttendanceRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_date"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "checked_in_at", Value: -1}},
			Options: options.Index().SetName("user_checked_in_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create attendance indexes: %w", err)
	}
	return nil
}
