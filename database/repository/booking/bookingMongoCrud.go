package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"deskhive/database"
	"deskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client      *mongo.Client
	bookingColl *mongo.Collection
	ledgerColl  *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &MongoBookingRepo{
		client:      database.MongoClient,
		bookingColl: db.Collection("bookings"),
		ledgerColl:  db.Collection("bookedSeats"),
	}
}

// CreateBookingWithLedger inserts the booking document and its ledger entries
// inside one session transaction so a pending hold is never half-written.
func (repo *MongoBookingRepo) CreateBookingWithLedger(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctxWithTimeout)

	_, err = session.WithTransaction(ctxWithTimeout, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("error creating booking: %w", err)
		}
		docs := make([]interface{}, 0, len(entries))
		for i := range entries {
			docs = append(docs, entries[i])
		}
		if len(docs) > 0 {
			if _, err := repo.ledgerColl.InsertMany(sc, docs); err != nil {
				return nil, fmt.Errorf("error creating ledger entries: %w", err)
			}
		}
		return nil, nil
	})
	return err
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// GetByIDs retrieves the bookings with the given IDs.
func (repo *MongoBookingRepo) GetByIDs(ctx context.Context, bookingIDs []string) ([]models.Booking, error) {
	if len(bookingIDs) == 0 {
		return []models.Booking{}, nil
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctxWithTimeout, bson.M{"id": bson.M{"$in": bookingIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus performs the conditional check-then-patch transition. The
// status filter makes the patch a no-op when a concurrent caller already
// moved the booking, so a sweeper run can never overwrite a confirmation.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, from []models.BookingStatus, to models.BookingStatus) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": bookingID, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": now}}

	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return false, fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}

	// Cascade to the ledger so entry status always mirrors the parent.
	ledgerFilter := bson.M{"booking_id": bookingID}
	ledgerUpdate := bson.M{"$set": bson.M{"status": to, "updated_at": now}}
	if _, err := repo.ledgerColl.UpdateMany(ctxWithTimeout, ledgerFilter, ledgerUpdate); err != nil {
		return false, fmt.Errorf("error cascading status to ledger for booking %s: %w", bookingID, err)
	}
	return true, nil
}

// UpdateSchedule overwrites the scheduling fields of a pending booking and
// swaps its ledger entries for the new seat set in one transaction.
func (repo *MongoBookingRepo) UpdateSchedule(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctxWithTimeout)

	_, err = session.WithTransaction(ctxWithTimeout, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"id": booking.ID, "status": models.BookingPending}
		update := bson.M{"$set": bson.M{
			"seat_ids":       booking.SeatIDs,
			"start_date":     booking.StartDate,
			"end_date":       booking.EndDate,
			"duration_type":  booking.DurationType,
			"working_days":   booking.WorkingDays,
			"price_per_seat": booking.PricePerSeat,
			"amount":         booking.Amount,
			"updated_at":     booking.UpdatedAt,
		}}
		res, err := repo.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return nil, fmt.Errorf("error updating booking %s: %w", booking.ID, err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("booking %s no longer pending", booking.ID)
		}

		if _, err := repo.ledgerColl.DeleteMany(sc, bson.M{"booking_id": booking.ID}); err != nil {
			return nil, fmt.Errorf("error clearing ledger for booking %s: %w", booking.ID, err)
		}
		docs := make([]interface{}, 0, len(entries))
		for i := range entries {
			docs = append(docs, entries[i])
		}
		if len(docs) > 0 {
			if _, err := repo.ledgerColl.InsertMany(sc, docs); err != nil {
				return nil, fmt.Errorf("error rewriting ledger for booking %s: %w", booking.ID, err)
			}
		}
		return nil, nil
	})
	return err
}

// SetPaymentRef records the gateway reference on a booking.
func (repo *MongoBookingRepo) SetPaymentRef(ctx context.Context, bookingID, paymentRef string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": bson.M{"payment_ref": paymentRef, "updated_at": time.Now()}}
	if _, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error setting payment ref on booking %s: %w", bookingID, err)
	}
	return nil
}
