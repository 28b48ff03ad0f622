package bookingRepo

import (
	"context"
	"time"

	"deskhive/models"
)

// BookingRepository defines the data access methods used by the booking
// lifecycle engine. It owns both the bookings collection and the bookedSeats
// ledger, because every status transition must cascade from a booking to its
// ledger entries.
type BookingRepository interface {
	// CreateBookingWithLedger inserts a booking plus one ledger entry per seat
	// in a single transaction.
	CreateBookingWithLedger(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error
	// GetByID retrieves a booking by its ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// GetByIDs retrieves the bookings with the given IDs.
	GetByIDs(ctx context.Context, bookingIDs []string) ([]models.Booking, error)
	// UpdateStatus transitions a booking and its ledger entries to the target
	// status, but only while the booking's current status is one of the given
	// from statuses. Returns false when no booking matched, which means a
	// concurrent transition already moved it.
	UpdateStatus(ctx context.Context, bookingID string, from []models.BookingStatus, to models.BookingStatus) (bool, error)
	// UpdateSchedule overwrites a booking's scheduling fields and replaces its
	// ledger entries in a single transaction.
	UpdateSchedule(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error
	// SetPaymentRef records the gateway reference on a booking.
	SetPaymentRef(ctx context.Context, bookingID, paymentRef string) error
	// ListByUser returns a user's bookings ordered oldest start date first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByStartDateRange returns bookings starting within [from, to],
	// ordered oldest start date first.
	ListByStartDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	// ListPendingCreatedBefore returns pending bookings older than the cutoff.
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	// ListConfirmedEndedBefore returns confirmed bookings whose end date is
	// strictly before the given calendar date.
	ListConfirmedEndedBefore(ctx context.Context, date string) ([]models.Booking, error)
	// ListActiveLedgerBySeat returns pending/confirmed ledger entries for a seat.
	ListActiveLedgerBySeat(ctx context.Context, seatID string) ([]models.BookedSeat, error)
	// ListLedgerByBooking returns all ledger entries for a booking.
	ListLedgerByBooking(ctx context.Context, bookingID string) ([]models.BookedSeat, error)
	// EnsureIndexes creates the indexes both collections depend on.
	EnsureIndexes() error
}
