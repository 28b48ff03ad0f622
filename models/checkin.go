package models

import "time"

// Attendance records a successful QR check-in against a confirmed booking.
// At most one record exists per booking per calendar date.
type Attendance struct {
	ID          string    `bson:"id" json:"id"`
	BookingID   string    `bson:"booking_id" json:"booking_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	SeatIDs     []string  `bson:"seat_ids" json:"seat_ids"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD" local calendar date
	CheckedInAt time.Time `bson:"checked_in_at" json:"checked_in_at"`
}

// DailyAttendance is one bucket of the admin attendance metric.
type DailyAttendance struct {
	Date  string `bson:"_id" json:"date"`
	Count int    `bson:"count" json:"count"`
}
