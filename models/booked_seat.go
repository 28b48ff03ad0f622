package models

import "time"

// BookedSeat is a per-seat ledger entry mirroring its parent booking's status.
// It exists so "find all active reservations for seat X" is a single indexed
// query instead of a scan over every booking's seat array. Entries are never
// deleted independently; they transition together with the parent booking.
type BookedSeat struct {
	ID         string        `bson:"id" json:"id"`                   // Unique ledger entry identifier (UUID)
	BookingID  string        `bson:"booking_id" json:"booking_id"`   // Parent booking
	SeatID     string        `bson:"seat_id" json:"seat_id"`         // Seat this entry reserves
	SeatNumber int           `bson:"seat_number" json:"seat_number"` // Denormalized for conflict messages
	Status     BookingStatus `bson:"status" json:"status"`           // Always equals the parent booking's status
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}
