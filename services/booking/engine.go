package booking

import (
	"context"
	"fmt"
	"time"

	"deskhive/models"
	"deskhive/services/payment"
	"deskhive/utils"

	bookingRepo "deskhive/database/repository/booking"
	seatRepo "deskhive/database/repository/seat"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService. It is stateless between
// calls; all state lives in the document store and the lock leases.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Seats    seatRepo.SeatRepository
	Locks    SeatLocker
	Payments payment.Gateway
	// Cache is optional; a nil cache means every seat map is recomputed.
	Cache  SeatMapCache
	Logger *zap.Logger
	Zone   *time.Location

	// Now is the clock used for validation and sweep cutoffs. Overridable in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) zone() *time.Location {
	if s.Zone != nil {
		return s.Zone
	}
	return time.Local
}

// today returns the current calendar date string in the booking zone.
func (s *DefaultBookingService) today() string {
	return FormatDate(s.now().In(s.zone()))
}

// schedule is a validated, priced booking window.
type schedule struct {
	rate      Rate
	startDate string
	endDate   string
}

// resolveSchedule validates the duration type, seat count and start date, then
// prices the booking and resolves its inclusive end date.
func (s *DefaultBookingService) resolveSchedule(seatIDs []string, startDate string, durationType models.DurationType) (*schedule, error) {
	rate, err := PriceFor(durationType)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}

	start, err := ParseDate(startDate, s.zone())
	if err != nil {
		return nil, err
	}
	if FormatDate(start) < s.today() {
		return nil, ErrPastDate
	}
	if start.Weekday() == time.Sunday {
		return nil, ErrClosedOnSunday
	}

	return &schedule{
		rate:      rate,
		startDate: FormatDate(start),
		endDate:   FormatDate(ResolveEndDate(start, rate.WorkingDays)),
	}, nil
}

// fetchSeats loads the requested seats and fails with ErrSeatNotFound when
// any of them is missing.
func (s *DefaultBookingService) fetchSeats(ctx context.Context, seatIDs []string) (map[string]models.Seat, error) {
	seats, err := s.Seats.GetByIDs(ctx, seatIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}
	for _, id := range seatIDs {
		if _, ok := byID[id]; !ok {
			return nil, ErrSeatNotFound
		}
	}
	return byID, nil
}

func buildLedgerEntries(booking *models.Booking, seatsByID map[string]models.Seat) []models.BookedSeat {
	entries := make([]models.BookedSeat, 0, len(booking.SeatIDs))
	for _, seatID := range booking.SeatIDs {
		entries = append(entries, models.BookedSeat{
			ID:         uuid.New().String(),
			BookingID:  booking.ID,
			SeatID:     seatID,
			SeatNumber: seatsByID[seatID].SeatNumber,
			Status:     booking.Status,
			CreatedAt:  booking.UpdatedAt,
			UpdatedAt:  booking.UpdatedAt,
		})
	}
	return entries
}

// Create validates and prices the request, takes the per-seat lock leases,
// re-checks availability under the locks, inserts the pending booking plus
// ledger entries, and opens a payment for the total amount.
func (s *DefaultBookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.BookingQuote, error) {
	sched, err := s.resolveSchedule(req.SeatIDs, req.StartDate, req.DurationType)
	if err != nil {
		return nil, err
	}

	seatsByID, err := s.fetchSeats(ctx, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	// The availability check and the insert below are separate store
	// operations; the lock lease serializes them per seat.
	release, err := s.Locks.AcquireAll(ctx, req.SeatIDs)
	if err != nil {
		return nil, err
	}
	defer release()

	avail, err := s.CheckAvailability(ctx, req.SeatIDs, sched.startDate, sched.endDate, "")
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, &SeatUnavailableError{SeatNumber: avail.ConflictingSeat}
	}

	now := s.now()
	booking := &models.Booking{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		SeatIDs:      req.SeatIDs,
		StartDate:    sched.startDate,
		EndDate:      sched.endDate,
		DurationType: req.DurationType,
		WorkingDays:  sched.rate.WorkingDays,
		PricePerSeat: sched.rate.PricePerSeat,
		Amount:       TotalAmount(sched.rate, len(req.SeatIDs)),
		Status:       models.BookingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.CreateBookingWithLedger(ctx, booking, buildLedgerEntries(booking, seatsByID)); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	intent, err := s.Payments.CreateIntent(ctx, models.PaymentIntentRequest{
		BookingID: booking.ID,
		UserID:    req.UserID,
		Email:     req.Email,
		Amount:    booking.Amount,
	})
	if err != nil {
		// The hold is useless without an open payment; cancel it right away
		// rather than leaving the seats locked for the full hold window.
		if _, cancelErr := s.Repo.UpdateStatus(ctx, booking.ID, []models.BookingStatus{models.BookingPending}, models.BookingCancelled); cancelErr != nil {
			s.Logger.Error("failed to cancel booking after payment error",
				zap.String("booking_id", booking.ID), zap.Error(cancelErr))
		}
		return nil, fmt.Errorf("failed to open payment: %w", err)
	}
	if err := s.Repo.SetPaymentRef(ctx, booking.ID, intent.ID); err != nil {
		s.Logger.Warn("failed to record payment ref", zap.String("booking_id", booking.ID), zap.Error(err))
	}
	booking.PaymentRef = intent.ID

	s.Logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("user_id", booking.UserID),
		zap.Int("seats", len(booking.SeatIDs)),
		zap.Int64("amount", booking.Amount),
	)
	return &models.BookingQuote{
		Booking: booking,
		Payment: intent,
		Message: fmt.Sprintf("Seats held. Complete payment within %d minutes to confirm.", int(utils.PaymentHoldWindow.Minutes())),
	}, nil
}

// Update reschedules a booking while it is still pending. Only the owner may
// update, and the booking's own ledger entries are excluded from the
// conflict scan.
func (s *DefaultBookingService) Update(ctx context.Context, bookingID, userID string, req UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingPending {
		return nil, &InvalidStateError{Current: booking.Status, Attempted: "update"}
	}

	sched, err := s.resolveSchedule(req.SeatIDs, req.StartDate, req.DurationType)
	if err != nil {
		return nil, err
	}
	seatsByID, err := s.fetchSeats(ctx, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	release, err := s.Locks.AcquireAll(ctx, req.SeatIDs)
	if err != nil {
		return nil, err
	}
	defer release()

	avail, err := s.CheckAvailability(ctx, req.SeatIDs, sched.startDate, sched.endDate, bookingID)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, &SeatUnavailableError{SeatNumber: avail.ConflictingSeat}
	}

	booking.SeatIDs = req.SeatIDs
	booking.StartDate = sched.startDate
	booking.EndDate = sched.endDate
	booking.DurationType = req.DurationType
	booking.WorkingDays = sched.rate.WorkingDays
	booking.PricePerSeat = sched.rate.PricePerSeat
	booking.Amount = TotalAmount(sched.rate, len(req.SeatIDs))
	booking.UpdatedAt = s.now()

	if err := s.Repo.UpdateSchedule(ctx, booking, buildLedgerEntries(booking, seatsByID)); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.Logger.Info("booking rescheduled", zap.String("booking_id", booking.ID))
	return booking, nil
}

// Confirm moves a pending booking to confirmed, cascading to its ledger
// entries. All referenced seats must still exist.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID string) error {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if !booking.Status.CanTransitionTo(models.BookingConfirmed) {
		return &InvalidStateError{Current: booking.Status, Attempted: "confirm"}
	}
	if _, err := s.fetchSeats(ctx, booking.SeatIDs); err != nil {
		return err
	}

	ok, err := s.Repo.UpdateStatus(ctx, bookingID, []models.BookingStatus{models.BookingPending}, models.BookingConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race; report the status the booking actually has now.
		current, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil || current == nil {
			return ErrBookingNotFound
		}
		return &InvalidStateError{Current: current.Status, Attempted: "confirm"}
	}

	s.Logger.Info("booking confirmed", zap.String("booking_id", bookingID))
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled. userID enforces
// ownership for user-initiated cancellations; the payment gateway path
// passes an empty userID.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, userID string) error {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if userID != "" && booking.UserID != userID {
		return ErrForbidden
	}
	if !booking.Status.CanTransitionTo(models.BookingCancelled) {
		return &InvalidStateError{Current: booking.Status, Attempted: "cancel"}
	}

	from := []models.BookingStatus{models.BookingPending, models.BookingConfirmed}
	ok, err := s.Repo.UpdateStatus(ctx, bookingID, from, models.BookingCancelled)
	if err != nil {
		return err
	}
	if !ok {
		current, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil || current == nil {
			return ErrBookingNotFound
		}
		return &InvalidStateError{Current: current.Status, Attempted: "cancel"}
	}

	s.Logger.Info("booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

// GetByID returns a booking owned by userID.
func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListForUser returns a user's bookings ordered oldest start date first.
// An empty userID degrades to an empty list: browsing may be anonymous.
func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if userID == "" {
		return []models.Booking{}, nil
	}
	return s.Repo.ListByUser(ctx, userID)
}
