package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"deskhive/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository backed by a map and a
// ledger slice, with the same conditional-update semantics as the mongo repo.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	ledger   []models.BookedSeat

	// failUpdateStatus forces UpdateStatus to error for specific booking IDs.
	failUpdateStatus map[string]error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:         make(map[string]*models.Booking),
		failUpdateStatus: make(map[string]error),
	}
}

func (r *fakeBookingRepo) CreateBookingWithLedger(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings[booking.ID] = &copied
	r.ledger = append(r.ledger, entries...)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByIDs(ctx context.Context, bookingIDs []string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		if b, ok := r.bookings[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID string, from []models.BookingStatus, to models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failUpdateStatus[bookingID]; ok {
		return false, err
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if b.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	for i := range r.ledger {
		if r.ledger[i].BookingID == bookingID {
			r.ledger[i].Status = to
		}
	}
	return true, nil
}

func (r *fakeBookingRepo) UpdateSchedule(ctx context.Context, booking *models.Booking, entries []models.BookedSeat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings[booking.ID] = &copied
	kept := r.ledger[:0]
	for _, e := range r.ledger {
		if e.BookingID != booking.ID {
			kept = append(kept, e)
		}
	}
	r.ledger = append(kept, entries...)
	return nil
}

func (r *fakeBookingRepo) SetPaymentRef(ctx context.Context, bookingID, paymentRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[bookingID]; ok {
		b.PaymentRef = paymentRef
	}
	return nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (r *fakeBookingRepo) ListByStartDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.StartDate >= from && b.StartDate <= to {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (r *fakeBookingRepo) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingPending && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListConfirmedEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingConfirmed && b.EndDate < date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListActiveLedgerBySeat(ctx context.Context, seatID string) ([]models.BookedSeat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookedSeat
	for _, e := range r.ledger {
		if e.SeatID == seatID && (e.Status == models.BookingPending || e.Status == models.BookingConfirmed) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListLedgerByBooking(ctx context.Context, bookingID string) ([]models.BookedSeat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookedSeat
	for _, e := range r.ledger {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) EnsureIndexes() error { return nil }

// fakeSeatRepo is an in-memory SeatRepository.
type fakeSeatRepo struct {
	seats map[string]models.Seat
}

func newFakeSeatRepo(seats ...models.Seat) *fakeSeatRepo {
	r := &fakeSeatRepo{seats: make(map[string]models.Seat)}
	for _, s := range seats {
		r.seats[s.ID] = s
	}
	return r
}

func (r *fakeSeatRepo) Create(ctx context.Context, seat *models.Seat) error {
	r.seats[seat.ID] = *seat
	return nil
}

func (r *fakeSeatRepo) GetByID(ctx context.Context, seatID string) (*models.Seat, error) {
	s, ok := r.seats[seatID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSeatRepo) GetByIDs(ctx context.Context, seatIDs []string) ([]models.Seat, error) {
	out := make([]models.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		if s, ok := r.seats[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) List(ctx context.Context) ([]models.Seat, error) {
	out := make([]models.Seat, 0, len(r.seats))
	for _, s := range r.seats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (r *fakeSeatRepo) Delete(ctx context.Context, seatID string) error {
	delete(r.seats, seatID)
	return nil
}

func (r *fakeSeatRepo) EnsureIndexes() error { return nil }

// fakeLocker grants every lease unless contended is set.
type fakeLocker struct {
	contended bool
	acquired  int
	released  int
}

func (l *fakeLocker) AcquireAll(ctx context.Context, seatIDs []string) (func(), error) {
	if l.contended {
		return nil, ErrSeatsContended
	}
	l.acquired++
	return func() { l.released++ }, nil
}

// fakeGateway records intent requests and mints sequential intent IDs.
type fakeGateway struct {
	fail     bool
	requests []models.PaymentIntentRequest
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	if g.fail {
		return nil, errors.New("gateway unreachable")
	}
	g.requests = append(g.requests, req)
	return &models.PaymentIntent{
		ID:           fmt.Sprintf("pi_test_%d", len(g.requests)),
		ClientSecret: "cs_test_secret",
		Status:       "requires_payment_method",
	}, nil
}

var testClock = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBookingRepo, seats *fakeSeatRepo, gw *fakeGateway) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Seats:    seats,
		Locks:    &fakeLocker{},
		Payments: gw,
		Logger:   zap.NewNop(),
		Zone:     time.UTC,
		Now:      func() time.Time { return testClock },
	}
}

func seedBooking(repo *fakeBookingRepo, userID, seatID string, seatNumber int, start, end string, status models.BookingStatus, createdAt time.Time) *models.Booking {
	b := &models.Booking{
		ID:           uuid.New().String(),
		UserID:       userID,
		SeatIDs:      []string{seatID},
		StartDate:    start,
		EndDate:      end,
		DurationType: models.DurationWeek,
		WorkingDays:  6,
		PricePerSeat: 600000,
		Amount:       600000,
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	entries := []models.BookedSeat{{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		SeatID:     seatID,
		SeatNumber: seatNumber,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}}
	_ = repo.CreateBookingWithLedger(context.Background(), b, entries)
	return b
}

var testSeats = []models.Seat{
	{ID: "s1", SeatNumber: 1, Zone: "A"},
	{ID: "s2", SeatNumber: 2, Zone: "A"},
}

func TestCreateBookingWeek(t *testing.T) {
	repo := newFakeBookingRepo()
	gw := &fakeGateway{}
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), gw)

	quote, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		Email:        "u1@example.com",
		SeatIDs:      []string{"s1"},
		StartDate:    "2025-03-10",
		DurationType: models.DurationWeek,
	})
	require.NoError(t, err)
	require.NotNil(t, quote.Booking)

	b := quote.Booking
	assert.Equal(t, 6, b.WorkingDays)
	assert.Equal(t, "2025-03-10", b.StartDate)
	assert.Equal(t, "2025-03-17", b.EndDate)
	assert.Equal(t, int64(600000), b.Amount)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "pi_test_1", b.PaymentRef)

	entries, err := repo.ListLedgerByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].SeatID)
	assert.Equal(t, 1, entries[0].SeatNumber)
	assert.Equal(t, models.BookingPending, entries[0].Status)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, int64(600000), gw.requests[0].Amount)
	assert.Equal(t, b.ID, gw.requests[0].BookingID)
}

func TestCreateBookingAmountScalesWithSeats(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})

	quote, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1", "s2"},
		StartDate:    "2025-03-10",
		DurationType: models.DurationMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4800000), quote.Booking.Amount)
	assert.Equal(t, int64(2400000), quote.Booking.PricePerSeat)

	entries, _ := repo.ListLedgerByBooking(context.Background(), quote.Booking.ID)
	assert.Len(t, entries, 2)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateBookingRequest
		wantErr error
	}{
		{
			name:    "unknown duration type",
			req:     CreateBookingRequest{UserID: "u1", SeatIDs: []string{"s1"}, StartDate: "2025-03-10", DurationType: "fortnight"},
			wantErr: ErrInvalidDurationType,
		},
		{
			name:    "no seats selected",
			req:     CreateBookingRequest{UserID: "u1", SeatIDs: nil, StartDate: "2025-03-10", DurationType: models.DurationDay},
			wantErr: ErrNoSeatsSelected,
		},
		{
			name:    "start date in the past",
			req:     CreateBookingRequest{UserID: "u1", SeatIDs: []string{"s1"}, StartDate: "2025-02-20", DurationType: models.DurationDay},
			wantErr: ErrPastDate,
		},
		{
			name:    "sunday start rejected",
			req:     CreateBookingRequest{UserID: "u1", SeatIDs: []string{"s1"}, StartDate: "2025-03-09", DurationType: models.DurationDay},
			wantErr: ErrClosedOnSunday,
		},
		{
			name:    "unknown seat",
			req:     CreateBookingRequest{UserID: "u1", SeatIDs: []string{"ghost"}, StartDate: "2025-03-10", DurationType: models.DurationDay},
			wantErr: ErrSeatNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})

			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.bookings)
		})
	}
}

func TestCreateBookingRejectsMalformedDate(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), newFakeSeatRepo(testSeats...), &fakeGateway{})

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1"},
		StartDate:    "10/03/2025",
		DurationType: models.DurationDay,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestCreateBookingSeatConflict(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
	seedBooking(repo, "other", "s1", 1, "2025-03-10", "2025-03-17", models.BookingConfirmed, testClock)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1"},
		StartDate:    "2025-03-12",
		DurationType: models.DurationDay,
	})
	var unavail *SeatUnavailableError
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, 1, unavail.SeatNumber)
}

func TestCreateBookingLockContention(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), newFakeSeatRepo(testSeats...), &fakeGateway{})
	svc.Locks = &fakeLocker{contended: true}

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1"},
		StartDate:    "2025-03-10",
		DurationType: models.DurationDay,
	})
	assert.ErrorIs(t, err, ErrSeatsContended)
}

func TestCreateBookingReleasesLocks(t *testing.T) {
	locker := &fakeLocker{}
	svc := newTestService(newFakeBookingRepo(), newFakeSeatRepo(testSeats...), &fakeGateway{})
	svc.Locks = locker

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1"},
		StartDate:    "2025-03-10",
		DurationType: models.DurationDay,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestCreateBookingPaymentFailureCancelsHold(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{fail: true})

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		UserID:       "u1",
		SeatIDs:      []string{"s1"},
		StartDate:    "2025-03-10",
		DurationType: models.DurationDay,
	})
	require.Error(t, err)

	// The hold must not survive a failed payment open.
	require.Len(t, repo.bookings, 1)
	for _, b := range repo.bookings {
		assert.Equal(t, models.BookingCancelled, b.Status)
	}
	for _, e := range repo.ledger {
		assert.Equal(t, models.BookingCancelled, e.Status)
	}
}

func TestConfirmBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
	b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

	require.NoError(t, svc.Confirm(context.Background(), b.ID))

	got, _ := repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	entries, _ := repo.ListLedgerByBooking(context.Background(), b.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.BookingConfirmed, entries[0].Status)
}

func TestConfirmRejectsTerminalStates(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingCancelled, models.BookingExpired, models.BookingConfirmed} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo()
			svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
			b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", status, testClock)

			err := svc.Confirm(context.Background(), b.ID)
			var stateErr *InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Current)
		})
	}
}

func TestConfirmMissingBooking(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), newFakeSeatRepo(testSeats...), &fakeGateway{})
	assert.ErrorIs(t, svc.Confirm(context.Background(), "nope"), ErrBookingNotFound)
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels pending", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		require.NoError(t, svc.Cancel(context.Background(), b.ID, "u1"))
		got, _ := repo.GetByID(context.Background(), b.ID)
		assert.Equal(t, models.BookingCancelled, got.Status)
	})

	t.Run("owner cancels confirmed", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingConfirmed, testClock)

		require.NoError(t, svc.Cancel(context.Background(), b.ID, "u1"))
	})

	t.Run("gateway path skips ownership", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		require.NoError(t, svc.Cancel(context.Background(), b.ID, ""))
	})

	t.Run("wrong user", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		assert.ErrorIs(t, svc.Cancel(context.Background(), b.ID, "intruder"), ErrForbidden)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingCancelled, testClock)

		var stateErr *InvalidStateError
		assert.ErrorAs(t, svc.Cancel(context.Background(), b.ID, "u1"), &stateErr)
	})
}

func TestUpdateBooking(t *testing.T) {
	t.Run("owner reschedules pending", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		updated, err := svc.Update(context.Background(), b.ID, "u1", UpdateBookingRequest{
			SeatIDs:      []string{"s2"},
			StartDate:    "2025-03-11",
			DurationType: models.DurationDay,
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-11", updated.StartDate)
		assert.Equal(t, "2025-03-11", updated.EndDate)
		assert.Equal(t, int64(150000), updated.Amount)

		entries, _ := repo.ListLedgerByBooking(context.Background(), b.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, "s2", entries[0].SeatID)
	})

	t.Run("own prior range is not a conflict", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		_, err := svc.Update(context.Background(), b.ID, "u1", UpdateBookingRequest{
			SeatIDs:      []string{"s1"},
			StartDate:    "2025-03-11",
			DurationType: models.DurationWeek,
		})
		require.NoError(t, err)
	})

	t.Run("conflict with another booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)
		seedBooking(repo, "other", "s2", 2, "2025-03-10", "2025-03-17", models.BookingConfirmed, testClock)

		_, err := svc.Update(context.Background(), b.ID, "u1", UpdateBookingRequest{
			SeatIDs:      []string{"s2"},
			StartDate:    "2025-03-12",
			DurationType: models.DurationDay,
		})
		var unavail *SeatUnavailableError
		require.ErrorAs(t, err, &unavail)
		assert.Equal(t, 2, unavail.SeatNumber)
	})

	t.Run("not owner", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

		_, err := svc.Update(context.Background(), b.ID, "intruder", UpdateBookingRequest{
			SeatIDs:      []string{"s1"},
			StartDate:    "2025-03-11",
			DurationType: models.DurationDay,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("not pending", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
		b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingConfirmed, testClock)

		_, err := svc.Update(context.Background(), b.ID, "u1", UpdateBookingRequest{
			SeatIDs:      []string{"s1"},
			StartDate:    "2025-03-11",
			DurationType: models.DurationDay,
		})
		var stateErr *InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestGetByIDOwnership(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
	b := seedBooking(repo, "u1", "s1", 1, "2025-03-10", "2025-03-17", models.BookingPending, testClock)

	got, err := svc.GetByID(context.Background(), b.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.GetByID(context.Background(), b.ID, "intruder")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListForUser(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeSeatRepo(testSeats...), &fakeGateway{})
	seedBooking(repo, "u1", "s1", 1, "2025-03-17", "2025-03-22", models.BookingPending, testClock)
	seedBooking(repo, "u1", "s2", 2, "2025-03-10", "2025-03-15", models.BookingConfirmed, testClock)
	seedBooking(repo, "u2", "s1", 1, "2025-04-01", "2025-04-05", models.BookingPending, testClock)

	got, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-10", got[0].StartDate)
	assert.Equal(t, "2025-03-17", got[1].StartDate)

	// Anonymous browsing degrades to an empty list, never an error.
	anon, err := svc.ListForUser(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, anon)
}
