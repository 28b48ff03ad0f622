package models

import "time"

// DurationType selects one of the fixed booking durations offered to customers.
type DurationType string

const (
	DurationDay   DurationType = "day"
	DurationWeek  DurationType = "week"
	DurationMonth DurationType = "month"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingExpired   BookingStatus = "expired"
)

// validTransitions defines the state machine for booking status transitions.
// Cancelled and expired are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled, BookingExpired},
	BookingConfirmed: {BookingCancelled, BookingExpired},
	BookingCancelled: {},
	BookingExpired:   {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// Booking represents a reservation of one or more seats over a contiguous
// working-day range. Dates are calendar dates in "YYYY-MM-DD" form with the
// end date inclusive.
type Booking struct {
	ID           string        `bson:"id" json:"id"`                         // Unique booking identifier (UUID)
	UserID       string        `bson:"user_id" json:"user_id"`               // Authenticated subject who owns the booking
	SeatIDs      []string      `bson:"seat_ids" json:"seat_ids"`             // Seats reserved by this booking
	StartDate    string        `bson:"start_date" json:"start_date"`         // First reserved date
	EndDate      string        `bson:"end_date" json:"end_date"`             // Last reserved date (inclusive)
	DurationType DurationType  `bson:"duration_type" json:"duration_type"`   // day, week or month
	WorkingDays  int           `bson:"working_days" json:"working_days"`     // Number of non-Sunday days covered
	PricePerSeat int64         `bson:"price_per_seat" json:"price_per_seat"` // Price per seat in minor currency units
	Amount       int64         `bson:"amount" json:"amount"`                 // PricePerSeat * len(SeatIDs)
	Status       BookingStatus `bson:"status" json:"status"`
	PaymentRef   string        `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"` // Gateway payment reference
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}
