package booking

import (
	"context"

	"deskhive/models"
	"deskhive/utils"

	"go.uber.org/zap"
)

// ExpireStale reconciles two kinds of dead bookings on every sweep:
//
//  1. pending holds older than the payment window, and
//  2. confirmed bookings whose end date has already passed.
//
// Each record is patched with a status-conditional update, so a booking that
// a concurrent request confirmed or cancelled between the read and the patch
// is left alone. Per-record failures are logged and skipped; one bad record
// never aborts the batch. Running the sweep twice produces no extra changes.
func (s *DefaultBookingService) ExpireStale(ctx context.Context) (*models.SweepReport, error) {
	report := &models.SweepReport{}

	cutoff := s.now().Add(-utils.PaymentHoldWindow)
	stale, err := s.Repo.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	for _, b := range stale {
		ok, err := s.Repo.UpdateStatus(ctx, b.ID, []models.BookingStatus{models.BookingPending}, models.BookingExpired)
		if err != nil {
			s.Logger.Error("sweep: failed to expire stale pending booking",
				zap.String("booking_id", b.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		if ok {
			report.StalePending++
		}
	}

	pastDue, err := s.Repo.ListConfirmedEndedBefore(ctx, s.today())
	if err != nil {
		return nil, err
	}
	for _, b := range pastDue {
		ok, err := s.Repo.UpdateStatus(ctx, b.ID, []models.BookingStatus{models.BookingConfirmed}, models.BookingExpired)
		if err != nil {
			s.Logger.Error("sweep: failed to expire past-due confirmed booking",
				zap.String("booking_id", b.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		if ok {
			report.PastDueConfirmed++
		}
	}

	if report.StalePending > 0 || report.PastDueConfirmed > 0 || report.Skipped > 0 {
		s.Logger.Info("expiry sweep finished",
			zap.Int("stale_pending", report.StalePending),
			zap.Int("past_due_confirmed", report.PastDueConfirmed),
			zap.Int("skipped", report.Skipped),
		)
	}
	return report, nil
}
