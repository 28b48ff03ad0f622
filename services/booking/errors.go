package booking

import (
	"errors"
	"fmt"

	"deskhive/models"
)

// Validation errors: bad input, surfaced directly to the caller, no retry.
var (
	ErrInvalidDurationType = errors.New("invalid duration type: must be day, week or month")
	ErrNoSeatsSelected     = errors.New("no seats selected")
	ErrInvalidDate         = errors.New("invalid date")
	ErrPastDate            = errors.New("start date is in the past")
	ErrClosedOnSunday      = errors.New("bookings cannot start on a Sunday")
)

// Lifecycle errors: terminal for the current request, the caller must re-fetch state.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSeatNotFound    = errors.New("one or more seats do not exist")
	ErrForbidden       = errors.New("booking belongs to another user")
)

// ErrSeatsContended is returned when another request holds the lock lease for
// a requested seat. The caller should simply retry.
var ErrSeatsContended = errors.New("seats are being booked by another request, try again")

// SeatUnavailableError names the first seat that conflicts with an existing
// reservation so the UI can prompt re-selection.
type SeatUnavailableError struct {
	SeatNumber int
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat %d is already booked for the selected dates", e.SeatNumber)
}

// InvalidStateError reports a booking lifecycle violation: the attempted
// transition is not allowed from the booking's current status.
type InvalidStateError struct {
	Current   models.BookingStatus
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Attempted, e.Current)
}
