package checkin

import (
	"context"
	"errors"
	"time"

	attendanceRepo "deskhive/database/repository/attendance"
	bookingRepo "deskhive/database/repository/booking"
	"deskhive/models"
	"deskhive/services/booking"
	"deskhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Check-in failures surfaced to the scanner UI.
var (
	ErrInvalidToken       = errors.New("check-in code is invalid or expired")
	ErrOutsideBookedRange = errors.New("booking does not cover today")
)

// CheckinService issues QR tokens for confirmed bookings and records
// attendance when a token is scanned at the door.
type CheckinService interface {
	// IssueToken returns the signed payload embedded in the booking's QR code.
	IssueToken(ctx context.Context, bookingID, userID string) (string, error)
	// CheckIn decodes and validates a scanned token and records attendance.
	CheckIn(ctx context.Context, token string) (*models.Attendance, error)
	// History returns a user's check-in records, newest first.
	History(ctx context.Context, userID string) ([]models.Attendance, error)
}

// DefaultCheckinService implements CheckinService.
type DefaultCheckinService struct {
	Bookings   bookingRepo.BookingRepository
	Attendance attendanceRepo.AttendanceRepository
	Logger     *zap.Logger
	Zone       *time.Location

	Now func() time.Time
}

func (s *DefaultCheckinService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCheckinService) zone() *time.Location {
	if s.Zone != nil {
		return s.Zone
	}
	return time.Local
}

// IssueToken returns a signed check-in token for a confirmed booking owned by
// userID. The token expires at the end of the booking's last reserved day.
func (s *DefaultCheckinService) IssueToken(ctx context.Context, bookingID, userID string) (string, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", booking.ErrBookingNotFound
	}
	if b.UserID != userID {
		return "", booking.ErrForbidden
	}
	if b.Status != models.BookingConfirmed {
		return "", &booking.InvalidStateError{Current: b.Status, Attempted: "check in to"}
	}

	end, err := booking.ParseDate(b.EndDate, s.zone())
	if err != nil {
		return "", err
	}
	expiresAt := end.AddDate(0, 0, 1) // valid through the whole end date
	return utils.GenerateCheckinToken(b.ID, b.UserID, expiresAt)
}

// CheckIn validates a scanned token and records one attendance row for the
// booking and today's date. A payload that fails signature or claim checks
// is rejected outright.
func (s *DefaultCheckinService) CheckIn(ctx context.Context, token string) (*models.Attendance, error) {
	claims, err := utils.ParseCheckinToken(token)
	if err != nil {
		s.Logger.Warn("rejected check-in token", zap.Error(err))
		return nil, ErrInvalidToken
	}

	b, err := s.Bookings.GetByID(ctx, claims.BookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}
	if b.Status != models.BookingConfirmed {
		return nil, &booking.InvalidStateError{Current: b.Status, Attempted: "check in to"}
	}

	today := booking.FormatDate(s.now().In(s.zone()))
	if today < b.StartDate || today > b.EndDate {
		return nil, ErrOutsideBookedRange
	}

	// Fast pre-check; the unique (booking, date) index still catches
	// concurrent scans of the same code.
	exists, err := s.Attendance.ExistsForDay(ctx, b.ID, today)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, attendanceRepo.ErrAlreadyCheckedIn
	}

	record := &models.Attendance{
		ID:          uuid.New().String(),
		BookingID:   b.ID,
		UserID:      b.UserID,
		SeatIDs:     b.SeatIDs,
		Date:        today,
		CheckedInAt: s.now(),
	}
	if err := s.Attendance.Create(ctx, record); err != nil {
		return nil, err
	}

	s.Logger.Info("check-in recorded",
		zap.String("booking_id", b.ID),
		zap.String("user_id", b.UserID),
		zap.String("date", today),
	)
	return record, nil
}

// History returns a user's check-in records, newest first.
func (s *DefaultCheckinService) History(ctx context.Context, userID string) ([]models.Attendance, error) {
	return s.Attendance.ListByUser(ctx, userID)
}
