package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"deskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByUser returns a user's bookings ordered oldest start date first.
func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	bookings := []models.Booking{}
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// ListByStartDateRange returns bookings starting within [from, to], ordered
// oldest start date first. Calendar date strings sort lexicographically.
func (repo *MongoBookingRepo) ListByStartDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"start_date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings in range [%s, %s]: %w", from, to, err)
	}
	defer cursor.Close(ctxWithTimeout)

	bookings := []models.Booking{}
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings in range: %w", err)
	}
	return bookings, nil
}

// ListPendingCreatedBefore returns pending bookings older than the cutoff,
// the stale-hold half of the sweeper's work set.
func (repo *MongoBookingRepo) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.BookingPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching stale pending bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding stale pending bookings: %w", err)
	}
	return bookings, nil
}

// ListConfirmedEndedBefore returns confirmed bookings whose end date is
// strictly before the given calendar date.
func (repo *MongoBookingRepo) ListConfirmedEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.BookingConfirmed,
		"end_date": bson.M{"$lt": date},
	}
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching past-due confirmed bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding past-due confirmed bookings: %w", err)
	}
	return bookings, nil
}

// ListActiveLedgerBySeat returns pending/confirmed ledger entries for a seat.
// This is the availability checker's primary query and is covered by the
// (seat_id, status) index.
func (repo *MongoBookingRepo) ListActiveLedgerBySeat(ctx context.Context, seatID string) ([]models.BookedSeat, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"seat_id": seatID,
		"status":  bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingConfirmed}},
	}
	cursor, err := repo.ledgerColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching active ledger entries for seat %s: %w", seatID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	entries := []models.BookedSeat{}
	if err := cursor.All(ctxWithTimeout, &entries); err != nil {
		return nil, fmt.Errorf("error decoding ledger entries for seat %s: %w", seatID, err)
	}
	return entries, nil
}

// ListLedgerByBooking returns all ledger entries for a booking.
func (repo *MongoBookingRepo) ListLedgerByBooking(ctx context.Context, bookingID string) ([]models.BookedSeat, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.ledgerColl.Find(ctxWithTimeout, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching ledger entries for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	entries := []models.BookedSeat{}
	if err := cursor.All(ctxWithTimeout, &entries); err != nil {
		return nil, fmt.Errorf("error decoding ledger entries for booking %s: %w", bookingID, err)
	}
	return entries, nil
}
