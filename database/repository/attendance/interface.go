package attendanceRepo

import (
	"context"

	"deskhive/models"
)

// AttendanceRepository defines data access to the attendance collection.
type AttendanceRepository interface {
	// Create inserts a check-in record. A duplicate (booking, date) pair
	// returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, record *models.Attendance) error
	// ExistsForDay reports whether the booking already checked in on a date.
	ExistsForDay(ctx context.Context, bookingID, date string) (bool, error)
	// CountPerDay aggregates check-ins per calendar date over [from, to].
	CountPerDay(ctx context.Context, from, to string) ([]models.DailyAttendance, error)
	// ListByUser returns a user's check-in history, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Attendance, error)
	// EnsureIndexes creates the indexes the collection depends on.
	EnsureIndexes() error
}
