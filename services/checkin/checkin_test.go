package checkin

import (
	"context"
	"sort"
	"testing"
	"time"

	attendanceRepo "deskhive/database/repository/attendance"
	"deskhive/models"
	"deskhive/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookings serves GetByID from a map; the checkin service uses nothing else.
type stubBookings struct {
	bookings map[string]*models.Booking
}

func (s *stubBookings) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *stubBookings) CreateBookingWithLedger(ctx context.Context, b *models.Booking, entries []models.BookedSeat) error {
	return nil
}
func (s *stubBookings) GetByIDs(ctx context.Context, ids []string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (bool, error) {
	return false, nil
}
func (s *stubBookings) UpdateSchedule(ctx context.Context, b *models.Booking, entries []models.BookedSeat) error {
	return nil
}
func (s *stubBookings) SetPaymentRef(ctx context.Context, id, ref string) error { return nil }
func (s *stubBookings) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListByStartDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListConfirmedEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListActiveLedgerBySeat(ctx context.Context, seatID string) ([]models.BookedSeat, error) {
	return nil, nil
}
func (s *stubBookings) ListLedgerByBooking(ctx context.Context, bookingID string) ([]models.BookedSeat, error) {
	return nil, nil
}
func (s *stubBookings) EnsureIndexes() error { return nil }

// fakeAttendance enforces one check-in per booking per date, like the unique
// index on the real collection.
type fakeAttendance struct {
	records []models.Attendance
}

func (f *fakeAttendance) Create(ctx context.Context, record *models.Attendance) error {
	for _, r := range f.records {
		if r.BookingID == record.BookingID && r.Date == record.Date {
			return attendanceRepo.ErrAlreadyCheckedIn
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendance) ExistsForDay(ctx context.Context, bookingID, date string) (bool, error) {
	for _, r := range f.records {
		if r.BookingID == bookingID && r.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendance) CountPerDay(ctx context.Context, from, to string) ([]models.DailyAttendance, error) {
	return nil, nil
}

func (f *fakeAttendance) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckedInAt.After(out[j].CheckedInAt) })
	return out, nil
}

func (f *fakeAttendance) EnsureIndexes() error { return nil }

// Booking dates sit far in the future so issued tokens stay within their
// expiry while the suite runs.
const (
	testStart = "2027-01-11"
	testEnd   = "2027-01-18"
)

func newTestCheckinService(b *models.Booking, today string) (*DefaultCheckinService, *fakeAttendance) {
	attendance := &fakeAttendance{}
	now, _ := time.ParseInLocation("2006-01-02", today, time.UTC)
	svc := &DefaultCheckinService{
		Bookings:   &stubBookings{bookings: map[string]*models.Booking{b.ID: b}},
		Attendance: attendance,
		Logger:     zap.NewNop(),
		Zone:       time.UTC,
		Now:        func() time.Time { return now.Add(10 * time.Hour) },
	}
	return svc, attendance
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:        "b1",
		UserID:    "u1",
		SeatIDs:   []string{"s1"},
		StartDate: testStart,
		EndDate:   testEnd,
		Status:    models.BookingConfirmed,
	}
}

func TestIssueTokenAndCheckIn(t *testing.T) {
	b := confirmedBooking()
	svc, attendance := newTestCheckinService(b, "2027-01-12")

	token, err := svc.IssueToken(context.Background(), b.ID, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	record, err := svc.CheckIn(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, b.ID, record.BookingID)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "2027-01-12", record.Date)
	assert.Len(t, attendance.records, 1)
}

func TestIssueTokenRejections(t *testing.T) {
	t.Run("wrong owner", func(t *testing.T) {
		b := confirmedBooking()
		svc, _ := newTestCheckinService(b, "2027-01-12")

		_, err := svc.IssueToken(context.Background(), b.ID, "intruder")
		assert.ErrorIs(t, err, booking.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		b := confirmedBooking()
		svc, _ := newTestCheckinService(b, "2027-01-12")

		_, err := svc.IssueToken(context.Background(), "nope", "u1")
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("not confirmed", func(t *testing.T) {
		b := confirmedBooking()
		b.Status = models.BookingPending
		svc, _ := newTestCheckinService(b, "2027-01-12")

		_, err := svc.IssueToken(context.Background(), b.ID, "u1")
		var stateErr *booking.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestCheckInRejectsGarbageToken(t *testing.T) {
	b := confirmedBooking()
	svc, _ := newTestCheckinService(b, "2027-01-12")

	for _, token := range []string{"", "not-a-jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.CheckIn(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestCheckInOutsideBookedRange(t *testing.T) {
	b := confirmedBooking()
	svc, _ := newTestCheckinService(b, "2027-01-12")

	token, err := svc.IssueToken(context.Background(), b.ID, "u1")
	require.NoError(t, err)

	// The scanner clock has moved to the day before the booking starts.
	early, _ := time.ParseInLocation("2006-01-02", "2027-01-10", time.UTC)
	svc.Now = func() time.Time { return early.Add(10 * time.Hour) }

	_, err = svc.CheckIn(context.Background(), token)
	assert.ErrorIs(t, err, ErrOutsideBookedRange)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	b := confirmedBooking()
	svc, _ := newTestCheckinService(b, "2027-01-12")

	token, err := svc.IssueToken(context.Background(), b.ID, "u1")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), token)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), token)
	assert.ErrorIs(t, err, attendanceRepo.ErrAlreadyCheckedIn)
}

func TestCheckInAfterCancellation(t *testing.T) {
	b := confirmedBooking()
	svc, _ := newTestCheckinService(b, "2027-01-12")

	token, err := svc.IssueToken(context.Background(), b.ID, "u1")
	require.NoError(t, err)

	// The booking is cancelled after the QR code was issued.
	b.Status = models.BookingCancelled

	_, err = svc.CheckIn(context.Background(), token)
	var stateErr *booking.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.BookingCancelled, stateErr.Current)
}

func TestHistoryListsOwnCheckinsNewestFirst(t *testing.T) {
	b := confirmedBooking()
	svc, attendance := newTestCheckinService(b, "2027-01-12")

	base := time.Date(2027, 1, 11, 9, 0, 0, 0, time.UTC)
	attendance.records = []models.Attendance{
		{ID: "a1", BookingID: b.ID, UserID: "u1", Date: "2027-01-11", CheckedInAt: base},
		{ID: "a2", BookingID: b.ID, UserID: "u1", Date: "2027-01-12", CheckedInAt: base.Add(24 * time.Hour)},
		{ID: "a3", BookingID: "b2", UserID: "someone-else", Date: "2027-01-12", CheckedInAt: base},
	}

	records, err := svc.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].ID)
	assert.Equal(t, "a1", records[1].ID)

	empty, err := svc.History(context.Background(), "stranger")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
