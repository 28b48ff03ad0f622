package booking

import (
	"context"

	"deskhive/models"
)

// CreateBookingRequest carries everything needed to open a new booking.
type CreateBookingRequest struct {
	UserID       string              `json:"-"`
	Email        string              `json:"-"`
	SeatIDs      []string            `json:"seat_ids"`
	StartDate    string              `json:"start_date"`
	DurationType models.DurationType `json:"duration_type"`
}

// UpdateBookingRequest reschedules a pending booking.
type UpdateBookingRequest struct {
	SeatIDs      []string            `json:"seat_ids"`
	StartDate    string              `json:"start_date"`
	DurationType models.DurationType `json:"duration_type"`
}

// AvailabilityResult reports whether a seat set is free for a date range and,
// when it is not, which seat number conflicted.
type AvailabilityResult struct {
	Available       bool `json:"available"`
	ConflictingSeat int  `json:"conflicting_seat,omitempty"`
}

// BookingService is the booking lifecycle engine: pricing, date resolution,
// availability, the pending/confirmed/cancelled/expired state machine and the
// expiry sweep.
type BookingService interface {
	// Create validates, prices and inserts a pending booking plus its ledger
	// entries, opens a payment and returns the quote.
	Create(ctx context.Context, req CreateBookingRequest) (*models.BookingQuote, error)
	// Update reschedules a booking while it is still pending and owned by userID.
	Update(ctx context.Context, bookingID, userID string, req UpdateBookingRequest) (*models.Booking, error)
	// Confirm moves a pending booking to confirmed. Driven by the payment
	// gateway's success callback.
	Confirm(ctx context.Context, bookingID string) error
	// Cancel moves a pending or confirmed booking to cancelled. An empty
	// userID skips the ownership check (gateway-initiated cancellation).
	Cancel(ctx context.Context, bookingID, userID string) error
	// GetByID returns a booking owned by userID.
	GetByID(ctx context.Context, bookingID, userID string) (*models.Booking, error)
	// ListForUser returns a user's bookings ordered oldest start date first.
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	// CheckAvailability scans the seat ledger for date-range conflicts.
	CheckAvailability(ctx context.Context, seatIDs []string, startDate, endDate, excludeBookingID string) (*AvailabilityResult, error)
	// SeatMap returns every seat with its derived availability for a range.
	SeatMap(ctx context.Context, startDate, endDate string) ([]models.SeatAvailability, error)
	// ExpireStale expires pending holds older than the payment window and
	// confirmed bookings whose end date has passed. Idempotent.
	ExpireStale(ctx context.Context) (*models.SweepReport, error)
}
