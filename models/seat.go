package models

import "time"

// Seat describes a single bookable workspace seat. Occupancy is never stored
// on the seat itself; it is derived from overlapping active bookings in the
// bookedSeats ledger.
type Seat struct {
	ID         string    `bson:"id" json:"id"`                             // Unique seat identifier (UUID)
	SeatNumber int       `bson:"seat_number" json:"seat_number"`           // Human-facing seat number, unique
	Zone       string    `bson:"zone,omitempty" json:"zone,omitempty"`     // Optional floor/zone label
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// SeatAvailability is the public seat-map view for a proposed date range.
type SeatAvailability struct {
	Seat      Seat `json:"seat"`
	Available bool `json:"available"`
}
